package params

import (
	"fmt"

	"github.com/spf13/viper"
)

// Keys consulted when an argument is missing
const (
	KeyImage   = "image"
	KeyCropDir = "crop.dir"
	KeyOutput  = "output"
)

// ParameterResolver handles resolution of positional parameters.
// Sources in priority order: CLI args > env vars / config > defaults.
type ParameterResolver struct {
	v *viper.Viper
}

// NewParameterResolver creates a resolver reading fallbacks from v
func NewParameterResolver(v *viper.Viper) *ParameterResolver {
	if v == nil {
		v = viper.GetViper()
	}
	return &ParameterResolver{v: v}
}

// ParameterInfo provides information about where a parameter came from
type ParameterInfo struct {
	Value  string
	Source string // "argument", "environment", "default", "none"
}

func (r *ParameterResolver) resolve(args []string, argIndex int, key string) ParameterInfo {
	// 1. Explicit argument (highest priority)
	if argIndex >= 0 && argIndex < len(args) && args[argIndex] != "" {
		return ParameterInfo{Value: args[argIndex], Source: "argument"}
	}

	// 2. Environment variable or config file
	if r.v.IsSet(key) {
		if value := r.v.GetString(key); value != "" {
			return ParameterInfo{Value: value, Source: "environment"}
		}
	}

	return ParameterInfo{Source: "none"}
}

// ResolveImageFile resolves the input image from arguments or WORDGRID_IMAGE
func (r *ParameterResolver) ResolveImageFile(args []string, argIndex int) (ParameterInfo, error) {
	info := r.resolve(args, argIndex, KeyImage)
	if info.Value == "" {
		return info, fmt.Errorf("image file is required: provide as argument or set WORDGRID_IMAGE environment variable")
	}
	return info, nil
}

// ResolveCropDir resolves the crop output directory, defaulting to "cells"
func (r *ParameterResolver) ResolveCropDir(args []string, argIndex int) ParameterInfo {
	info := r.resolve(args, argIndex, KeyCropDir)
	if info.Value == "" {
		return ParameterInfo{Value: "cells", Source: "default"}
	}
	return info
}

// ResolveOutputFile resolves an optional output file from a flag value or WORDGRID_OUTPUT
func (r *ParameterResolver) ResolveOutputFile(flagValue string) ParameterInfo {
	return r.resolve([]string{flagValue}, 0, KeyOutput)
}
