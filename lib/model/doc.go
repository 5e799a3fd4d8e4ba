// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package model defines the parsed building model that template
// reduction consumes: zones with their surface polygons, the
// constructions and materials those surfaces reference, named
// schedules, zone setting blocks, and simulation result tables.
//
// Producing a Building is the job of an external collaborator (the
// simulation engine toolchain and its file format). This package only
// fixes the boundary: the [Building] types, a [Loader] interface, and
// a file loader for the JSON interchange form of a model. The loader
// accepts JSONC (comments and trailing commas) so hand-written test
// fixtures stay readable.
//
// Numeric fields follow a zero-means-default convention: a zero
// density, conductivity, setpoint, or similar value is replaced by the
// template default when the model is translated into template
// entities.
package model
