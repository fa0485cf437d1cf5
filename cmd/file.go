package cmd

import (
	"fmt"

	"github.com/edgeforge/wictool/internal/bmap"
	"github.com/edgeforge/wictool/internal/compression"
	"github.com/edgeforge/wictool/internal/config"
	"github.com/edgeforge/wictool/internal/fsedit"
	"github.com/edgeforge/wictool/internal/inspect"
	"github.com/edgeforge/wictool/internal/logger"
	"github.com/edgeforge/wictool/internal/partition"
	"github.com/edgeforge/wictool/internal/sector"
	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Copy files into and out of image partitions",
}

var (
	copyToFiles   []string
	copyToImage   string
	copyToBmap    bool
	copyFromFiles []string
	copyFromImage string
	copyFromBmap  bool
)

var copyToCmd = &cobra.Command{
	Use:   "copy-to-image",
	Short: "Copy host files into image partitions",
	Long: `Copy one or more host files into partitions of a wic image.
Each --files entry has the form "in-file-path,out-partition:out-file-path",
e.g. "wpa_supplicant.conf,boot:/wpa_supplicant.conf".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := make([]partition.CopyToParams, 0, len(copyToFiles))
		for _, s := range copyToFiles {
			p, err := partition.ParseCopyToParams(s)
			if err != nil {
				return err
			}
			params = append(params, p)
		}

		shim := compression.NewShim(config.Instance.Compression.XzPreset, logger.Log)
		engine := newEngine()
		return shim.Run(copyToImage, func(image string) error {
			if err := engine.CopyToImage(params, image); err != nil {
				return err
			}
			if copyToBmap {
				return bmap.Generate(image)
			}
			return nil
		})
	},
}

var copyFromCmd = &cobra.Command{
	Use:   "copy-from-image",
	Short: "Copy files out of image partitions to the host",
	Long: `Copy one or more files out of partitions of a wic image.
Each --files entry has the form "in-partition:in-file-path,out-file-path",
e.g. "cert:/priv/device.crt,./device.crt".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := make([]partition.CopyFromParams, 0, len(copyFromFiles))
		for _, s := range copyFromFiles {
			p, err := partition.ParseCopyFromParams(s)
			if err != nil {
				return err
			}
			params = append(params, p)
		}

		shim := compression.NewShim(config.Instance.Compression.XzPreset, logger.Log)
		engine := newEngine()
		return shim.Run(copyFromImage, func(image string) error {
			if err := engine.CopyFromImage(params, image); err != nil {
				return err
			}
			if copyFromBmap {
				return bmap.Generate(image)
			}
			return nil
		})
	},
}

func newEngine() *partition.Engine {
	return partition.NewEngine(
		inspect.NewAutoInspector(logger.Log),
		sector.Copier{},
		fsedit.NewFatEditor(logger.Log),
		fsedit.NewExtEditor(),
		logger.Log,
	)
}

func markFileFlagsRequired(cmd *cobra.Command) {
	if err := cmd.MarkFlagRequired("files"); err != nil {
		panic(fmt.Sprintf("mark files flag required: %v", err))
	}
	if err := cmd.MarkFlagRequired("image"); err != nil {
		panic(fmt.Sprintf("mark image flag required: %v", err))
	}
}

func init() {
	copyToCmd.Flags().StringArrayVarP(&copyToFiles, "files", "f", nil, "file copy request, repeatable: in-file-path,out-partition:out-file-path")
	copyToCmd.Flags().StringVarP(&copyToImage, "image", "i", "", "path to wic image file")
	copyToCmd.Flags().BoolVarP(&copyToBmap, "generate-bmap-file", "b", false, "generate bmap file")
	markFileFlagsRequired(copyToCmd)

	copyFromCmd.Flags().StringArrayVarP(&copyFromFiles, "files", "f", nil, "file copy request, repeatable: in-partition:in-file-path,out-file-path")
	copyFromCmd.Flags().StringVarP(&copyFromImage, "image", "i", "", "path to wic image file")
	copyFromCmd.Flags().BoolVarP(&copyFromBmap, "generate-bmap-file", "b", false, "generate bmap file")
	markFileFlagsRequired(copyFromCmd)

	fileCmd.AddCommand(copyToCmd)
	fileCmd.AddCommand(copyFromCmd)
}
