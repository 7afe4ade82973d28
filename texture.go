package glbind

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/glbind/driver"
	"github.com/gogpu/gputypes"
)

// Texture2D is a 2D texture object. Textures are shareable.
type Texture2D struct {
	bindable
}

// NewTexture2D creates a texture under the active context.
func NewTexture2D() (*Texture2D, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.GenTexture()
	if err != nil {
		return nil, err
	}
	t := &Texture2D{}
	if err := t.initBindable(h, KindTexture2D); err != nil {
		return nil, err
	}
	monitorLeak(t, &t.resource, "Texture2D")
	return t, nil
}

// Bind makes this texture the bound 2D texture.
func (t *Texture2D) Bind() (bool, error) { return t.bind(t) }

// Destroy releases the texture and clears any binding still referencing it.
func (t *Texture2D) Destroy() error {
	return destroyBindable(t, func(d driver.Driver, h driver.Handle) error {
		return d.DeleteTexture(h)
	})
}

// Upload converts img to RGBA and uploads it to the texture.
// The texture must be bound.
func (t *Texture2D) Upload(img image.Image) error {
	if err := t.requireBound(); err != nil {
		return err
	}
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		converted := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(converted, converted.Bounds(), img, bounds.Min, xdraw.Src)
		rgba = converted
	}
	return drv.TexImage2D(bounds.Dx(), bounds.Dy(), gputypes.TextureFormatRGBA8Unorm, rgba.Pix)
}

// UploadPixels uploads raw pixel data in the given format.
// The texture must be bound.
func (t *Texture2D) UploadPixels(width, height int, format gputypes.TextureFormat, pixels []byte) error {
	if err := t.requireBound(); err != nil {
		return err
	}
	return drv.TexImage2D(width, height, format, pixels)
}
