package driver

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"tschema/internal/schema"
	"tschema/internal/version"
)

// DoctorReport is the machine-readable diagnostic document produced by
// `--doctor`. Failures are recorded inside the report instead of
// propagating; a missing input file is non-fatal here.
type DoctorReport struct {
	Timestamp   string            `json:"timestamp"`
	Version     string            `json:"version"`
	Environment DoctorEnvironment `json:"environment"`
	Input       DoctorInput       `json:"input"`
	Options     map[string]any    `json:"options"`

	ConversionResult *DoctorConversion `json:"conversionResult,omitempty"`
	ReadError        *DoctorError      `json:"readError,omitempty"`
}

// DoctorEnvironment captures the host process context.
type DoctorEnvironment struct {
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
	Cwd       string `json:"cwd"`
}

// DoctorInput describes the input file as found on disk.
type DoctorInput struct {
	FilePath     string `json:"filePath"`
	AbsolutePath string `json:"absolutePath"`
	FileExists   bool   `json:"fileExists"`
	FileSize     *int64 `json:"fileSize,omitempty"`
	Modified     string `json:"modified,omitempty"`
	SourceLength *int   `json:"sourceLength,omitempty"`
	SourceLines  *int   `json:"sourceLines,omitempty"`
	Source       string `json:"source,omitempty"`
}

// DoctorConversion is the conversion outcome.
type DoctorConversion struct {
	Success bool           `json:"success"`
	Schema  *schema.Schema `json:"schema,omitempty"`
	Error   *DoctorError   `json:"error,omitempty"`
}

// DoctorError is a serializable failure.
type DoctorError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// RunDoctor builds the full diagnostic report for one input file. It
// never fails: every error lands inside the report.
func RunDoctor(filePath string, opts Options) *DoctorReport {
	cwd, _ := os.Getwd()
	report := &DoctorReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   version.Number,
		Environment: DoctorEnvironment{
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS,
			Arch:      runtime.GOARCH,
			Cwd:       cwd,
		},
		Options: OptionsFingerprint(opts),
	}

	abs := filePath
	if !filepath.IsAbs(abs) {
		base := opts.BaseDir
		if base == "" {
			base = cwd
		}
		abs = filepath.Join(base, filePath)
	}
	report.Input = DoctorInput{FilePath: filePath, AbsolutePath: abs}

	info, statErr := os.Stat(abs)
	if statErr != nil {
		report.ReadError = &DoctorError{Message: statErr.Error()}
		return report
	}
	report.Input.FileExists = true
	size := info.Size()
	report.Input.FileSize = &size
	report.Input.Modified = info.ModTime().UTC().Format(time.RFC3339)

	content, readErr := os.ReadFile(abs)
	if readErr != nil {
		report.ReadError = &DoctorError{Message: readErr.Error()}
		return report
	}
	length := len(content)
	lines := strings.Count(string(content), "\n") + 1
	report.Input.SourceLength = &length
	report.Input.SourceLines = &lines
	report.Input.Source = string(content)

	res, err := ConvertFile(abs, opts)
	if err != nil {
		report.ConversionResult = &DoctorConversion{
			Success: false,
			Error:   &DoctorError{Message: err.Error()},
		}
		return report
	}
	report.ConversionResult = &DoctorConversion{Success: true, Schema: res.Schema}
	return report
}
