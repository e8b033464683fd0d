package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

// detectMimeType detects and validates the content type of a multipart file to ensure it is supported.
// The whole file is read into a buffer here because detecting the mime type directly from the
// multipart file corrupts it for any later read.
func (s *service) detectMimeType(file multipart.File, fileHeader *multipart.FileHeader) ([]byte, *mimetype.MIME, error) {
	size := fileHeader.Size
	buffer := make([]byte, size)
	_, err := file.Read(buffer)
	if err != nil {
		return nil, nil, err
	}
	mtype := mimetype.Detect(buffer)
	return buffer, mtype, nil
}

// uploadFileToS3 saves a form file to the aws bucket under a random name and
// returns the public URL of the uploaded object or an error if any.
func (s *service) uploadFileToS3(client *s3.Client, buffer []byte, mtype *mimetype.MIME, fileHeader *multipart.FileHeader) (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}
	uniqueFileName := "covers/" + strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)) + filepath.Ext(fileHeader.Filename)
	uploader := manager.NewUploader(client)
	_, err = uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3.Bucket),
		Key:           aws.String(uniqueFileName),
		Body:          bytes.NewReader(buffer),
		ContentLength: *aws.Int64(fileHeader.Size),
		ContentType:   aws.String(mtype.String()),
	})
	if err != nil {
		return "", err
	}
	return "https://" + s.config.S3.Bucket + ".s3." + s.config.S3.Region + ".amazonaws.com/" + uniqueFileName, nil
}

// background launches a background goroutine and recovers from panics inside
// the goroutine. It accepts an arbitrary function as a parameter and executes
// the function parameter inside the goroutine.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}

// fetchRemoteResource fetches data from a remote resource using a HTTP client.
func (s *service) fetchRemoteResource(client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	r, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
