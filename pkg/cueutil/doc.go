// SPDX-License-Identifier: MPL-2.0

// Package cueutil is the shared CUE parsing layer under the gatefile and
// config packages. Both embed a schema, compile user input, unify the two,
// and decode the result; this package holds that flow once, along with the
// error formatting that turns raw CUE errors into "file: path: message"
// lines users can act on.
//
//	//go:embed gatefile_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[Gatefile](
//	    schema,
//	    data,
//	    cueutil.CUEPath("#Gatefile"),
//	    cueutil.WithFilename("gatefile.cue"),
//	)
//	if err != nil {
//	    return nil, err
//	}
//	return result.Value, nil
package cueutil
