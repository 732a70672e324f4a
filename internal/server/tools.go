package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional file to also write the result to (.png, .jpg, .jpeg or .bmp)",
	}
}

// objectSchema builds an input schema. Every image tool takes "path"; tools
// that produce an image also take "output_path".
func objectSchema(props map[string]interface{}, producesImage bool, required ...string) map[string]interface{} {
	props["path"] = pathProperty()
	if producesImage {
		props["output_path"] = outputPathProperty()
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   append([]string{"path"}, required...),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, channel count and format. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.",
			InputSchema: objectSchema(map[string]interface{}{}, false),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{}, false),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate (hex, RGB, HSL and grayscale luma).",
			InputSchema: objectSchema(map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (0-based, from left)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (0-based, from top)",
				},
			}, false, "x", "y"),
		},
		{
			Name:        "image_preview",
			Description: "Return a display-sized copy of the image that fits within the given bounds, keeping the aspect ratio (Lanczos filtering).",
			InputSchema: objectSchema(map[string]interface{}{
				"max_width": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum output width. Defaults to the server preview size (512)",
				},
				"max_height": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum output height. Defaults to the server preview size (512)",
				},
			}, true),
		},

		// Point Transforms
		{
			Name:        "image_negative",
			Description: "Invert every sample (255 - v).",
			InputSchema: objectSchema(map[string]interface{}{}, true),
		},
		{
			Name:        "image_log",
			Description: "Log transform c*ln(1+v). Expands dark tones. By default c maps the brightest sample to 255.",
			InputSchema: objectSchema(map[string]interface{}{
				"c": map[string]interface{}{
					"type":        "number",
					"description": "Optional scale constant, must be > 0",
				},
			}, true),
		},
		{
			Name:        "image_gamma",
			Description: "Gamma correction 255*(v/255)^gamma. gamma < 1 brightens, gamma > 1 darkens.",
			InputSchema: objectSchema(map[string]interface{}{
				"gamma": map[string]interface{}{
					"type":        "number",
					"description": "Gamma exponent, must be > 0 (typical range 0.1-5.0)",
				},
			}, true, "gamma"),
		},

		// Filtering
		{
			Name:        "image_convolve",
			Description: "Convolve the image with a custom square, odd-sized kernel. Each channel is filtered independently and results are clamped to 0-255.",
			InputSchema: objectSchema(map[string]interface{}{
				"kernel": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "number"},
					},
					"description": "Kernel weights as rows, e.g. [[0,-1,0],[-1,5,-1],[0,-1,0]]",
				},
				"factor": map[string]interface{}{
					"type":        "number",
					"description": "Multiplier applied to the weighted sum. Default 1",
					"default":     1.0,
				},
				"boundary": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"reflect", "replicate", "zero"},
					"description": "How samples outside the image are synthesized. Default reflect",
					"default":     "reflect",
				},
			}, true, "kernel"),
		},
		{
			Name:        "image_smooth",
			Description: "Blur the image with a box (mean) or Gaussian kernel.",
			InputSchema: objectSchema(map[string]interface{}{
				"method": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"box", "gaussian"},
					"description": "Kernel type. Default box",
					"default":     "box",
				},
				"kernel_size": map[string]interface{}{
					"type":        "integer",
					"description": "Odd kernel size (3-11 typical). Default 3",
					"default":     3,
				},
				"sigma": map[string]interface{}{
					"type":        "number",
					"description": "Gaussian standard deviation, must be > 0. Default 1.0",
					"default":     1.0,
				},
			}, true),
		},
		{
			Name:        "image_sharpen",
			Description: "Sharpen with an unsharp mask: v + amount*(v - gaussian_blur(v)).",
			InputSchema: objectSchema(map[string]interface{}{
				"kernel_size": map[string]interface{}{
					"type":        "integer",
					"description": "Odd Gaussian kernel size. Default 5",
					"default":     5,
				},
				"sigma": map[string]interface{}{
					"type":        "number",
					"description": "Gaussian standard deviation, must be > 0. Default 1.0",
					"default":     1.0,
				},
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Strength, must be >= 0 (0 returns the image unchanged). Default 1.0",
					"default":     1.0,
				},
			}, true),
		},
		{
			Name:        "image_edge_detect",
			Description: "Detect edges. Sobel returns the gradient magnitude; Canny returns a thin binary edge map. Color images are converted to grayscale first.",
			InputSchema: objectSchema(map[string]interface{}{
				"method": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"sobel", "canny"},
					"description": "Edge detector. Default sobel",
					"default":     "sobel",
				},
				"normalize": map[string]interface{}{
					"type":        "boolean",
					"description": "Sobel only: scale magnitudes so the strongest edge is 255 instead of clamping. Default false",
					"default":     false,
				},
				"threshold_low": map[string]interface{}{
					"type":        "number",
					"description": "Canny only: weak edge threshold. Default 50",
					"default":     50,
				},
				"threshold_high": map[string]interface{}{
					"type":        "number",
					"description": "Canny only: strong edge threshold. Default 150",
					"default":     150,
				},
			}, true),
		},

		// Thresholding and Histogram
		{
			Name:        "image_threshold",
			Description: "Binarize the image: samples >= threshold become 255, others 0. Color images are converted to grayscale first.",
			InputSchema: objectSchema(map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Threshold T in 0-255",
				},
			}, true, "threshold"),
		},
		{
			Name:        "image_otsu",
			Description: "Binarize the image with a threshold chosen automatically by Otsu's method. Returns the threshold and the image.",
			InputSchema: objectSchema(map[string]interface{}{}, true),
		},
		{
			Name:        "image_histogram",
			Description: "Return the 256-bin grayscale histogram with total, max, mean and the Otsu threshold.",
			InputSchema: objectSchema(map[string]interface{}{}, false),
		},

		// Geometry
		{
			Name:        "image_resize",
			Description: "Resize the image with nearest-neighbor or bilinear interpolation. Give width and height, or scale_percent.",
			InputSchema: objectSchema(map[string]interface{}{
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Target width in pixels",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Target height in pixels",
				},
				"scale_percent": map[string]interface{}{
					"type":        "number",
					"description": "Scale both sides by this percentage instead (e.g. 150). Overrides width/height",
				},
				"method": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"nearest", "bilinear"},
					"description": "Interpolation. Default bilinear",
					"default":     "bilinear",
				},
			}, true),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
