package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-toolkit-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_gamma").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Rejected arguments (bad numbers, a color image where grayscale is needed,
// a kernel larger than the image) return code -32602; every other failure
// returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	s.debugf("tool %s finished in %v (err=%v)", params.Name, time.Since(start), err)
	if err != nil {
		if isArgumentError(err) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the source image from cache
//  4. Calls the imaging operation and encodes its result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_preview":
		return s.handleImagePreview(args)

	// Point Transforms
	case "image_negative":
		return s.handleImageNegative(args)
	case "image_log":
		return s.handleImageLog(args)
	case "image_gamma":
		return s.handleImageGamma(args)

	// Filtering
	case "image_convolve":
		return s.handleImageConvolve(args)
	case "image_smooth":
		return s.handleImageSmooth(args)
	case "image_sharpen":
		return s.handleImageSharpen(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)

	// Thresholding and Histogram
	case "image_threshold":
		return s.handleImageThreshold(args)
	case "image_otsu":
		return s.handleImageOtsu(args)
	case "image_histogram":
		return s.handleImageHistogram(args)

	// Geometry
	case "image_resize":
		return s.handleImageResize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func isArgumentError(err error) bool {
	return errors.Is(err, imaging.ErrInvalidParameter) ||
		errors.Is(err, imaging.ErrInvalidInput) ||
		errors.Is(err, imaging.ErrDimensionMismatch)
}

func missingArgument(name string) error {
	return errors.Wrapf(imaging.ErrInvalidParameter, "missing required argument %q", name)
}

// operation is one pixel transform applied by process. It returns the output
// buffer and a human-readable description of what was done.
type operation func(buf *imaging.Buffer) (*imaging.Buffer, string, error)

// process runs op on the image at path and encodes the result. Grayscale-only
// operations get an RGB source converted with imaging.Grayscale first. When
// outputPath is set the result is also written to disk and that path is
// evicted from the cache.
func (s *Server) process(path, outputPath string, grayOnly bool, op operation) (*imaging.ImageResult, error) {
	src, err := s.loadSource(path, grayOnly)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, name, err := op(src)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return s.finish(out, name, elapsed, outputPath)
}

func (s *Server) loadSource(path string, grayOnly bool) (*imaging.Buffer, error) {
	if path == "" {
		return nil, missingArgument("path")
	}
	src, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if grayOnly && !src.IsGray() {
		src = imaging.Grayscale(src)
	}
	return src, nil
}

func (s *Server) finish(out *imaging.Buffer, name string, elapsed time.Duration, outputPath string) (*imaging.ImageResult, error) {
	if outputPath != "" {
		if err := imaging.Save(out, outputPath); err != nil {
			return nil, err
		}
		s.cache.Evict(outputPath)
	}

	result, err := imaging.NewImageResult(out, name, elapsed)
	if err != nil {
		return nil, err
	}
	result.OutputPath = outputPath
	s.debugf("%s: %dx%dx%d in %.1f ms", name, out.Width, out.Height, out.Channels, result.DurationMS)
	return result, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, missingArgument("path")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, missingArgument("path")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.loadSource(a.Path, false)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type imagePreviewArgs struct {
	Path       string `json:"path"`
	MaxWidth   int    `json:"max_width"`
	MaxHeight  int    `json:"max_height"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = s.cfg.PreviewSize
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = s.cfg.PreviewSize
	}
	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		out, err := imaging.Preview(buf, a.MaxWidth, a.MaxHeight)
		return out, fmt.Sprintf("Preview (fit %dx%d)", a.MaxWidth, a.MaxHeight), err
	})
}

// === Point Transform Handlers ===

type imageOpArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageNegative(args json.RawMessage) (interface{}, error) {
	var a imageOpArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		return imaging.Negative(buf), "Negative", nil
	})
}

type imageLogArgs struct {
	Path       string   `json:"path"`
	C          *float64 `json:"c"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageLog(args json.RawMessage) (interface{}, error) {
	var a imageLogArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		c := imaging.LogScale(buf)
		if a.C != nil {
			c = *a.C
		}
		out, err := imaging.LogTransform(buf, c)
		return out, fmt.Sprintf("Log (c=%.2f)", c), err
	})
}

type imageGammaArgs struct {
	Path       string   `json:"path"`
	Gamma      *float64 `json:"gamma"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageGamma(args json.RawMessage) (interface{}, error) {
	var a imageGammaArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Gamma == nil {
		return nil, missingArgument("gamma")
	}
	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		out, err := imaging.GammaTransform(buf, *a.Gamma)
		return out, fmt.Sprintf("Gamma (γ=%.2f)", *a.Gamma), err
	})
}

// === Filtering Handlers ===

type imageConvolveArgs struct {
	Path       string      `json:"path"`
	Kernel     [][]float64 `json:"kernel"`
	Factor     *float64    `json:"factor"`
	Boundary   string      `json:"boundary"`
	OutputPath string      `json:"output_path"`
}

func (s *Server) handleImageConvolve(args json.RawMessage) (interface{}, error) {
	var a imageConvolveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Kernel) == 0 {
		return nil, missingArgument("kernel")
	}
	size := len(a.Kernel)
	weights := make([]float64, 0, size*size)
	for i, row := range a.Kernel {
		if len(row) != size {
			return nil, errors.Wrapf(imaging.ErrInvalidParameter, "kernel row %d has %d weights, want %d", i, len(row), size)
		}
		weights = append(weights, row...)
	}
	factor := 1.0
	if a.Factor != nil {
		factor = *a.Factor
	}
	kernel, err := imaging.NewKernel(size, weights, factor)
	if err != nil {
		return nil, err
	}
	policy, err := imaging.ParseBoundaryPolicy(a.Boundary)
	if err != nil {
		return nil, err
	}
	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		out, err := imaging.Convolve(buf, kernel, policy)
		return out, fmt.Sprintf("Convolve (k=%d, %s)", size, policy), err
	})
}

type imageSmoothArgs struct {
	Path       string   `json:"path"`
	Method     string   `json:"method"`
	KernelSize int      `json:"kernel_size"`
	Sigma      *float64 `json:"sigma"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageSmooth(args json.RawMessage) (interface{}, error) {
	var a imageSmoothArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = "box"
	}
	if a.KernelSize == 0 {
		a.KernelSize = 3
	}
	sigma := 1.0
	if a.Sigma != nil {
		sigma = *a.Sigma
	}

	switch a.Method {
	case "box":
		return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
			out, err := imaging.SmoothBox(buf, a.KernelSize)
			return out, fmt.Sprintf("Smoothing (Box, k=%d)", a.KernelSize), err
		})
	case "gaussian":
		return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
			out, err := imaging.SmoothGaussian(buf, a.KernelSize, sigma)
			return out, fmt.Sprintf("Smoothing (Gaussian, k=%d, σ=%.2f)", a.KernelSize, sigma), err
		})
	default:
		return nil, errors.Wrapf(imaging.ErrInvalidParameter, "unknown smoothing method %q", a.Method)
	}
}

type imageSharpenArgs struct {
	Path       string   `json:"path"`
	KernelSize int      `json:"kernel_size"`
	Sigma      *float64 `json:"sigma"`
	Amount     *float64 `json:"amount"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageSharpen(args json.RawMessage) (interface{}, error) {
	var a imageSharpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.KernelSize == 0 {
		a.KernelSize = 5
	}
	sigma, amount := 1.0, 1.0
	if a.Sigma != nil {
		sigma = *a.Sigma
	}
	if a.Amount != nil {
		amount = *a.Amount
	}
	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		out, err := imaging.UnsharpMask(buf, a.KernelSize, sigma, amount)
		return out, fmt.Sprintf("Sharpen (k=%d, σ=%.2f, amt=%.2f)", a.KernelSize, sigma, amount), err
	})
}

type imageEdgeDetectArgs struct {
	Path          string  `json:"path"`
	Method        string  `json:"method"`
	Normalize     bool    `json:"normalize"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	OutputPath    string  `json:"output_path"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = "sobel"
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 150
	}

	switch a.Method {
	case "sobel":
		return s.process(a.Path, a.OutputPath, true, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
			g, err := imaging.SobelGradients(buf)
			if err != nil {
				return nil, "", err
			}
			if a.Normalize {
				return g.Normalized(), "Sobel (normalized)", nil
			}
			return g.Clamped(), "Sobel", nil
		})
	case "canny":
		return s.process(a.Path, a.OutputPath, true, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
			out, err := imaging.CannyEdges(buf, a.ThresholdLow, a.ThresholdHigh)
			return out, fmt.Sprintf("Canny (low=%.0f, high=%.0f)", a.ThresholdLow, a.ThresholdHigh), err
		})
	default:
		return nil, errors.Wrapf(imaging.ErrInvalidParameter, "unknown edge method %q", a.Method)
	}
}

// === Thresholding and Histogram Handlers ===

type imageThresholdArgs struct {
	Path       string `json:"path"`
	Threshold  *int   `json:"threshold"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == nil {
		return nil, missingArgument("threshold")
	}
	return s.process(a.Path, a.OutputPath, true, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		out, err := imaging.ThresholdApply(buf, *a.Threshold)
		return out, fmt.Sprintf("Threshold (T=%d)", *a.Threshold), err
	})
}

// OtsuResult is an image_otsu result: the binarized image plus the threshold
// Otsu's method selected.
type OtsuResult struct {
	Threshold int `json:"threshold"`
	*imaging.ImageResult
}

func (s *Server) handleImageOtsu(args json.RawMessage) (interface{}, error) {
	var a imageOpArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var threshold int
	result, err := s.process(a.Path, a.OutputPath, true, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		t, err := imaging.OtsuThreshold(buf)
		if err != nil {
			return nil, "", err
		}
		threshold = t
		out, err := imaging.ThresholdApply(buf, t)
		return out, fmt.Sprintf("Otsu (T=%d)", t), err
	})
	if err != nil {
		return nil, err
	}
	return &OtsuResult{Threshold: threshold, ImageResult: result}, nil
}

// HistogramResult reports the grayscale intensity distribution of an image.
type HistogramResult struct {
	// Counts holds one entry per intensity level 0-255.
	Counts imaging.Histogram `json:"counts"`

	// Total equals width*height of the image.
	Total int `json:"total"`

	// Max is the largest single count, for scaling a chart.
	Max int `json:"max"`

	// Mean is the average intensity.
	Mean float64 `json:"mean"`

	// OtsuThreshold is the threshold image_otsu would choose.
	OtsuThreshold int `json:"otsu_threshold"`

	// Converted is true when the source was RGB and was reduced to luma first.
	Converted bool `json:"converted"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.loadSource(a.Path, false)
	if err != nil {
		return nil, err
	}
	gray := src
	if !src.IsGray() {
		gray = imaging.Grayscale(src)
	}

	hist, err := imaging.HistogramGray(gray)
	if err != nil {
		return nil, err
	}
	otsu, err := imaging.OtsuThreshold(gray)
	if err != nil {
		return nil, err
	}
	return &HistogramResult{
		Counts:        hist,
		Total:         hist.Total(),
		Max:           hist.Max(),
		Mean:          hist.Mean(),
		OtsuThreshold: otsu,
		Converted:     !src.IsGray(),
	}, nil
}

// === Geometry Handlers ===

type imageResizeArgs struct {
	Path         string  `json:"path"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	ScalePercent float64 `json:"scale_percent"`
	Method       string  `json:"method"`
	OutputPath   string  `json:"output_path"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = "bilinear"
	}

	var resize func(*imaging.Buffer, int, int) (*imaging.Buffer, error)
	var label string
	switch a.Method {
	case "nearest":
		resize, label = imaging.ResizeNearest, "Nearest"
	case "bilinear":
		resize, label = imaging.ResizeBilinear, "Bilinear"
	default:
		return nil, errors.Wrapf(imaging.ErrInvalidParameter, "unknown resize method %q", a.Method)
	}

	return s.process(a.Path, a.OutputPath, false, func(buf *imaging.Buffer) (*imaging.Buffer, string, error) {
		w, h := a.Width, a.Height
		if a.ScalePercent != 0 {
			var err error
			if w, h, err = imaging.ScaledSize(buf.Width, buf.Height, a.ScalePercent); err != nil {
				return nil, "", err
			}
		}
		if w > s.cfg.MaxDimension || h > s.cfg.MaxDimension {
			return nil, "", errors.Wrapf(imaging.ErrInvalidParameter,
				"target %dx%d exceeds the %d pixel limit", w, h, s.cfg.MaxDimension)
		}
		out, err := resize(buf, w, h)
		return out, fmt.Sprintf("Resize %dx%d (%s)", w, h, label), err
	})
}
