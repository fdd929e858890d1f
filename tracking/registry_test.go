package tracking

import (
	"errors"
	"slices"
	"testing"
)

type stubProvider struct{ name string }

func (stubProvider) NewSession(Features) (Session, error) { return nil, nil }

func TestRegistryPriority(t *testing.T) {
	Register(ProviderSimulated, func() Provider { return stubProvider{"sim"} })
	t.Cleanup(func() { Unregister(ProviderSimulated) })

	p, name := Best()
	if name != ProviderSimulated {
		t.Fatalf("Best() name = %q, want %q", name, ProviderSimulated)
	}
	if sp, ok := p.(stubProvider); !ok || sp.name != "sim" {
		t.Errorf("Best() = %#v", p)
	}

	Register(ProviderPlatform, func() Provider { return stubProvider{"platform"} })
	t.Cleanup(func() { Unregister(ProviderPlatform) })

	if _, name := Best(); name != ProviderPlatform {
		t.Errorf("Best() name = %q, want %q", name, ProviderPlatform)
	}
	if names := Available(); !slices.Contains(names, ProviderSimulated) || !slices.Contains(names, ProviderPlatform) {
		t.Errorf("Available() = %v", names)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("missing")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Lookup() error = %v, want ErrUnknownProvider", err)
	}
}

func TestInstallerFunc(t *testing.T) {
	var got bool
	inst := InstallerFunc(func(user bool) (InstallStatus, error) {
		got = user
		return InstallRequested, nil
	})
	status, err := inst.RequestInstall(true)
	if err != nil || status != InstallRequested || !got {
		t.Errorf("RequestInstall() = %v, %v (user=%v)", status, err, got)
	}
	if s, _ := AlwaysInstalled.RequestInstall(false); s != Installed {
		t.Errorf("AlwaysInstalled = %v", s)
	}
}
