// Package config provides configuration loading, merging, and validation
// facilities for the request pipeline.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Unset fields receive defaults before validation. The route table can only be
// supplied by the JSON file.
package config
