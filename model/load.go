package model

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // texture formats
	_ "image/jpeg" // texture formats
	_ "image/png"  // texture formats
	"io/fs"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"  // texture formats
	_ "golang.org/x/image/tiff" // texture formats
	_ "golang.org/x/image/webp" // texture formats
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/arcam/internal/logx"
)

// Assets locates a model, its textures and a motion inside a file system.
// Paths use forward slashes.
type Assets struct {
	// Model is the model file.
	Model string
	// TextureDir holds the files the model references. Every regular file
	// under it is offered to the renderer as a texture. Empty means the
	// directory containing Model.
	TextureDir string
	// Motion is the motion file. Empty skips motion and playback.
	Motion string
}

// ErrNoModel is returned by Load when Assets names no model.
var ErrNoModel = errors.New("model: no model file configured")

// imageExts lists extensions validated with image.DecodeConfig before
// being handed to the renderer.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// Stats reports what Load passed to the renderer.
type Stats struct {
	Textures int
	Skipped  []string
}

// Load reads a model, its textures and its motion from fsys into r, then
// starts playback. Texture names are the paths relative to the texture
// directory in Unicode NFC, which is how model files reference them.
// Image files that fail to decode are skipped; a missing model or motion
// file is an error.
func Load(fsys fs.FS, r Renderer, a Assets) (Stats, error) {
	var st Stats
	if a.Model == "" {
		return st, ErrNoModel
	}
	data, err := fs.ReadFile(fsys, a.Model)
	if err != nil {
		return st, fmt.Errorf("model: read model: %w", err)
	}
	if err := r.LoadModel(data); err != nil {
		return st, fmt.Errorf("model: load model %s: %w", a.Model, err)
	}

	dir := a.TextureDir
	if dir == "" {
		dir = path.Dir(a.Model)
	}
	err = fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := textureName(dir, p)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if imageExts[strings.ToLower(path.Ext(p))] {
			_, format, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				logx.L().Warn("model: skipping undecodable texture", "name", name, "err", err)
				st.Skipped = append(st.Skipped, name)
				return nil
			}
			logx.L().Debug("model: texture", "name", name, "format", format)
		}
		if err := r.LoadTexture(name, data, false); err != nil {
			return fmt.Errorf("load texture %s: %w", name, err)
		}
		st.Textures++
		return nil
	})
	if err != nil {
		return st, fmt.Errorf("model: textures: %w", err)
	}
	if b, ok := r.(TextureBinder); ok {
		b.UpdateBindTexture()
	}

	if a.Motion == "" {
		return st, nil
	}
	motion, err := fs.ReadFile(fsys, a.Motion)
	if err != nil {
		return st, fmt.Errorf("model: read motion: %w", err)
	}
	if err := r.LoadMotion(motion); err != nil {
		return st, fmt.Errorf("model: load motion %s: %w", a.Motion, err)
	}
	r.Play()
	logx.L().Info("model: loaded", "model", a.Model, "textures", st.Textures, "skipped", len(st.Skipped))
	return st, nil
}

func textureName(dir, p string) string {
	rel := p
	if dir != "." {
		rel = strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
	}
	return norm.NFC.String(rel)
}
