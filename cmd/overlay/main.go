/*
Copyright © 2026 the Overlay authors.
This file is part of Overlay.

Overlay is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Overlay is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Overlay.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command overlay computes the polygon overlay of two feature layers.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spatialmodel/overlay"
	"github.com/spatialmodel/overlay/geoskernel"
)

var log *logrus.Logger

// Cfg holds configuration information.
var Cfg *viper.Viper

func init() {
	log = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
	})

	Cfg = viper.New()
	Cfg.SetEnvPrefix("OVERLAY")
	Cfg.AutomaticEnv()

	runCmd.Flags().String("how", "intersection",
		fmt.Sprintf("how specifies the overlay relation to compute; one of %v.", overlay.Relations))
	runCmd.Flags().StringP("out", "o", "out.geojson",
		"out specifies the path the output layer is written to.")
	runCmd.Flags().Int("processors", 0,
		"processors is the number of goroutines used to classify faces; 0 means all available.")
	runCmd.Flags().Bool("index", false,
		"index turns on spatial-index pruning of containment candidates.")
	for _, name := range []string{"how", "out", "processors", "index"} {
		if err := Cfg.BindPFlag(name, runCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	Root.AddCommand(versionCmd, runCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "overlay",
	Short: "Compute the polygon overlay of two feature layers.",
	Long: `overlay combines two polygonal feature layers into a new polygonal
partition reflecting a boolean-style spatial relation (intersection, union,
identity, symmetric_difference, or difference) and carries the attributes of
the contributing input features onto each output polygon.

Layers are read from and written to GeoJSON (.geojson, .json) or shapefile
(.shp) files. Configuration options can be set with command-line flags or
with environment variables in the format 'OVERLAY_var'.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("overlay v%s\n", overlay.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run layer1 layer2",
	Short: "Compute the overlay of two layers.",
	Long: `run loads the two given layers, computes the overlay under the
relation given by --how, and writes the result to the path given by --out.
Output features carry the attribute columns of both input layers, with nulls
filled in for the layer that does not contribute to a face.`,
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		how := overlay.Relation(cast.ToString(Cfg.Get("how")))

		layer1, err := readLayer(args[0])
		if err != nil {
			return err
		}
		layer2, err := readLayer(args[1])
		if err != nil {
			return err
		}
		log.Infof("loaded %d features from %s and %d features from %s",
			layer1.Len(), args[0], layer2.Len(), args[1])

		o := &overlay.Overlay{
			Kernel:       geoskernel.New(),
			Processors:   cast.ToInt(Cfg.Get("processors")),
			SpatialIndex: cast.ToBool(Cfg.Get("index")),
		}
		out, err := o.Overlay(layer1, layer2, how)
		if err != nil {
			return err
		}
		log.Infof("%s of %s and %s produced %d features", how, args[0], args[1], out.Len())

		outPath := cast.ToString(Cfg.Get("out"))
		if err := writeLayer(outPath, out); err != nil {
			return err
		}
		log.Infof("wrote %s", outPath)
		return nil
	},
}

func readLayer(path string) (*overlay.FeatureCollection, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		return overlay.ReadShapefile(path)
	case ".geojson", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return overlay.ReadGeoJSON(f)
	default:
		return nil, fmt.Errorf("unsupported layer format %q; use .shp, .geojson, or .json", ext)
	}
}

func writeLayer(path string, fc *overlay.FeatureCollection) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		return overlay.WriteShapefile(path, fc)
	case ".geojson", ".json":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return overlay.WriteGeoJSON(f, fc)
	default:
		return fmt.Errorf("unsupported layer format %q; use .shp, .geojson, or .json", ext)
	}
}

func main() {
	if err := Root.Execute(); err != nil {
		os.Exit(1)
	}
}
