// Package server implements the MCP (Model Context Protocol) server that
// exposes the imaging operations as tools.
//
// The server is the shell around the pixel core: it decodes image files,
// picks parameters out of tool arguments, calls exactly one imaging operation
// and hands the result back as a base64 PNG (optionally also saved to disk).
// It keeps no history; undo is a matter of calling a tool on an earlier file.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load, image_dimensions, image_sample_color, image_preview
//
// Point Transforms:
//   - image_negative, image_log, image_gamma
//
// Filtering:
//   - image_convolve, image_smooth, image_sharpen, image_edge_detect
//
// Thresholding and Histogram:
//   - image_threshold, image_otsu, image_histogram
//
// Geometry:
//   - image_resize
//
// Grayscale-only operations (threshold, Otsu, edges, histogram) convert RGB
// sources with BT.601 luma before running.
//
// # Chaining
//
// Every image tool accepts output_path. Writing a result evicts that path
// from the image cache, so the next tool call that names it reads the new
// file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses:
//   - -32602 "Invalid params": an argument the imaging package rejected
//     (out-of-range number, wrong channel count, kernel larger than image)
//   - -32000 "Tool execution failed": I/O, decode and encode failures
//
// The error data field carries the full error text.
//
// # Configuration
//
// See LoadConfig for the IMAGE_TOOLKIT_* environment variables.
package server
