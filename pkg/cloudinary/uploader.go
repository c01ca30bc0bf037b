package cloudinary

import (
	"context"
	"io"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader hands image bytes to external storage and returns a public URL.
type Uploader interface {
	UploadImage(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

// New reads CLOUDINARY_URL from the environment.
func New() (*CloudinaryUploader, error) {
	client, err := cld.New()
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: client}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     filename,
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
