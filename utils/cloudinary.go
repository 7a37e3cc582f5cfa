package utils

import (
	"context"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joho/godotenv"
)

// OffloadThreshold is the inline-attachment size above which file content
// is pushed to Cloudinary and the incident keeps only the URL.
const OffloadThreshold = 512 * 1024

// CloudinaryEnabled reports whether an upload account is configured.
func CloudinaryEnabled() bool {
	return os.Getenv("CLOUDINARY_CLOUD_NAME") != ""
}

// InitCloudinary initializes the Cloudinary client
func InitCloudinary() (*cloudinary.Cloudinary, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return nil, err
	}
	return cld, nil
}

// UploadAttachment pushes a data URI to Cloudinary and returns the secure
// URL to store in place of the inline content. Cloudinary accepts data
// URIs directly as the upload source.
func UploadAttachment(dataURI, publicID string) (string, error) {
	cld, err := InitCloudinary()
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	resp, err := cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       "incident-files",
		UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
