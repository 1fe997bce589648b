// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used across the
// moddef, asset, and config packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// JSON is a subset of CUE, so mod descriptor and asset definition files go
// through the same flow as native CUE configuration.
//
// # Usage
//
//	//go:embed moddef_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[ModDef](
//	    schemaBytes,
//	    fileBytes,
//	    "#ModDef",
//	    cueutil.WithFilename("AtlyssTools.json"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the CUE path for debugging
//	}
//	return result.Value, nil
package cueutil
