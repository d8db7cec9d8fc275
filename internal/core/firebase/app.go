package firebase

import (
	"context"
	"fmt"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"paroquia-backend/internal/core/config"
)

// NewApp initializes the Admin SDK. Without a credentials file it falls back
// to application default credentials.
func NewApp(ctx context.Context, c config.Firebase) (*fb.App, error) {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}
	var fc *fb.Config
	if c.ProjectID != "" {
		fc = &fb.Config{ProjectID: c.ProjectID}
	}
	app, err := fb.NewApp(ctx, fc, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	return app, nil
}
