package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image <prompt...>",
	Short: "Generate an image from a prompt",
	Long: `Generate an image and write it as PNG.

Examples:
  textdigest image "a lighthouse at dawn" --out lighthouse.png
  textdigest image edit photo.png "make it look like a watercolor"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImage,
}

var imageEditCmd = &cobra.Command{
	Use:   "edit <image> <prompt...>",
	Short: "Transform an existing image according to a prompt",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runImageEdit,
}

var (
	imageOut   string
	imageModel string
	imageSize  string
)

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageEditCmd)

	imageCmd.PersistentFlags().StringVar(&imageOut, "out", "image.png", "Output file path")
	imageCmd.PersistentFlags().StringVar(&imageModel, "image-model", "", "Image model identifier")
	imageCmd.Flags().StringVar(&imageSize, "size", "", "Image size, e.g. 1024x1024")
}

func runImage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	data, err := client.GenerateImage(ctx, strings.Join(args, " "), imageModel, imageSize)
	if err != nil {
		return err
	}

	return writeImage(cmd, data)
}

func runImageEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sourcePath := args[0]
	prompt := strings.Join(args[1:], " ")

	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source image: %w", err)
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			log.ErrorContext(ctx, "Failed to close source image",
				"error", closeErr,
				"sourcePath", sourcePath)
		}
	}()

	client, err := newClient()
	if err != nil {
		return err
	}

	data, err := client.EditImage(ctx, source, sourcePath, prompt, imageModel)
	if err != nil {
		return err
	}

	return writeImage(cmd, data)
}

func writeImage(cmd *cobra.Command, data []byte) error {
	if len(data) == 0 {
		return errors.New("image data is empty")
	}

	if err := os.WriteFile(imageOut, data, 0o600); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", imageOut, humanize.Bytes(uint64(len(data))))

	return nil
}
