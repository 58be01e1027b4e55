package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tendant/resume-url/pkg/resumeurl"
	"github.com/tendant/resume-url/pkg/resumeurl/presigned"
)

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	var key string
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file as the résumé object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			file, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", filePath, err)
			}
			defer file.Close()

			cfg, storage, err := loadStorage(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			if key == "" {
				key = cfg.ObjectKey
			}
			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(filePath))
			}
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			if err := storage.Upload(cmd.Context(), key, file, contentType); err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Upload successful!")
			printField(out, "Object key", key)
			printField(out, "Content type", contentType)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "object key (default: RESUME_OBJECT_KEY)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (default: detected from file extension)")

	return cmd
}

// NewSignCommand creates the sign command
func NewSignCommand() *cobra.Command {
	var expiresIn int64
	var check bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Issue a signed URL for the résumé object",
		Long: `Issue a signed URL using the same expiration policy as the server.
Without --expires-in the policy default applies; larger values are clamped to the maximum.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, storage, err := loadStorage(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			service, err := resumeurl.New(append(cfg.ServiceOptions(), resumeurl.WithSigner(storage))...)
			if err != nil {
				return err
			}

			var req resumeurl.IssueURLRequest
			if cmd.Flags().Changed("expires-in") {
				req.ExpiresInMinutes = &expiresIn
			}

			signed, err := service.IssueURL(cmd.Context(), req)
			if err != nil {
				return err
			}

			if check {
				result, err := presigned.NewClient().Check(cmd.Context(), signed.URL)
				if err != nil {
					return fmt.Errorf("signed URL check failed: %w", err)
				}
				slog.Debug("Signed URL reachable", "status", result.StatusCode, "content_type", result.ContentType)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"signedUrl": signed.URL,
					"expiresAt": signed.ExpiresAt,
				})
			}

			printField(out, "Signed URL", signed.URL)
			printField(out, "Expires at", signed.ExpiresAt.Format(time.RFC3339))
			printField(out, "Expires in", signed.ExpiresIn)
			return nil
		},
	}

	cmd.Flags().Int64Var(&expiresIn, "expires-in", 0, "lifetime in minutes (default: RESUME_DEFAULT_EXPIRATION)")
	cmd.Flags().BoolVar(&check, "check", false, "fetch the first byte of the signed URL to verify it works")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the same JSON the HTTP endpoint returns")

	return cmd
}

// NewStatCommand creates the stat command
func NewStatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat",
		Short: "Show metadata of the résumé object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, storage, err := loadStorage(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			meta, err := storage.Stat(cmd.Context(), cfg.ObjectKey)
			if err != nil {
				return fmt.Errorf("stat %s: %w", cfg.ObjectKey, err)
			}

			out := cmd.OutOrStdout()
			printField(out, "Key", meta.Key)
			printField(out, "Size", meta.Size)
			printField(out, "Content type", meta.ContentType)
			if meta.ETag != "" {
				printField(out, "ETag", meta.ETag)
			}
			printField(out, "Last modified", meta.LastModified.Format(time.RFC3339))
			return nil
		},
	}

	return cmd
}
