package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"bmicalc/models"
	"bmicalc/utils"
)

// LoadCategoryTable reads a JSON category table from a local path or an
// s3://bucket/key URI. An empty source returns a nil table, which makes the
// calculator fall back to the built-in one.
func LoadCategoryTable(ctx context.Context, source string, s3c utils.S3ObjectGetter) (models.CategoryTable, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "s3://") {
		bucket, key, perr := ParseS3URI(source)
		if perr != nil {
			return nil, perr
		}
		if s3c == nil {
			return nil, errors.New("s3 category source configured without an s3 client")
		}
		data, err = utils.ReadS3Object(ctx, s3c, bucket, key)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load bmi categories: %w", err)
	}

	var table models.CategoryTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode bmi categories from %s: %w", source, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("bmi categories from %s: table is empty", source)
	}
	utils.Log.WithField("source", source).Infof("loaded %d bmi age brackets", len(table))
	return table, nil
}

func ParseS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q, want s3://bucket/key", uri)
	}
	return bucket, key, nil
}
