package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/h2non/bimg"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/gorm"
)

var publicURL = os.Getenv("PUBLIC_URL")

const thumbWidth = 320

// UploadImageHandler stores a portfolio image (avatar, skill icon,
// project screenshot) in the bucket together with a thumbnail variant
// and returns the public URLs the client submits back as image fields.
func UploadImageHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB, client *s3.Client) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Println("[UPLOAD]", err)
		http.Error(w, "Failed to read image", http.StatusInternalServerError)
		return
	}

	imageUUID := uuid.New()
	key := fmt.Sprintf("images/%d/originals/%s_%s", userID, imageUUID.String(), header.Filename)
	thumbKey := fmt.Sprintf("images/%d/thumbs/%s_%s", userID, imageUUID.String(), header.Filename)
	contentType := header.Header.Get("Content-Type")

	if _, err := client.PutObject(r.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("BUCKET_NAME")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}); err != nil {
		log.Println("[UPLOAD]", err)
		http.Error(w, "Failed to upload image", http.StatusInternalServerError)
		return
	}

	thumb, err := bimg.NewImage(data).Process(bimg.Options{Width: thumbWidth})
	if err != nil {
		log.Println("[UPLOAD]", err)
		http.Error(w, "Failed to process image", http.StatusInternalServerError)
		return
	}

	if _, err := client.PutObject(r.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("BUCKET_NAME")),
		Key:         aws.String(thumbKey),
		Body:        bytes.NewReader(thumb),
		ContentType: aws.String(contentType),
	}); err != nil {
		log.Println("[UPLOAD]", err)
		http.Error(w, "Failed to upload thumbnail", http.StatusInternalServerError)
		return
	}

	upload := models.Upload{
		UUID:       imageUUID.String(),
		UserID:     userID,
		Filename:   header.Filename,
		StorageKey: key,
		ThumbKey:   thumbKey,
		MimeType:   contentType,
	}
	if err := db.Create(&upload).Error; err != nil {
		log.Println("[UPLOAD]", err)
		http.Error(w, "Error saving upload metadata", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"message":  "Image uploaded successfully",
		"url":      CleanURL(fmt.Sprintf(publicURL, key)),
		"thumbUrl": CleanURL(fmt.Sprintf(publicURL, thumbKey)),
	})
}

// CleanURL percent-encodes spaces and normalizes the public URL.
func CleanURL(urlStr string) string {
	urlStr = strings.ReplaceAll(urlStr, " ", "%20")
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	return parsedURL.String()
}
