package visualize

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// DefaultWidth and DefaultHeight are the image size used by the CLI.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// WritePlot は p を format（"png", "svg", "pdf" など）で output に書き込みます。
func WritePlot(p *plot.Plot, width, height vg.Length, output io.Writer, format string) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return errors.Wrapf(err, "render %s", format)
	}
	_, err = w.WriteTo(output)
	return err
}

func combineErrors(errs ...error) (err error) {
	for _, e := range errs {
		switch {
		case e == nil:
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}

// WriteClosePlot writes p and closes output; both errors are reported.
func WriteClosePlot(p *plot.Plot, width, height vg.Length, output io.WriteCloser, format string) (err error) {
	defer func() {
		err = combineErrors(err, output.Close())
	}()
	return WritePlot(p, width, height, output, format)
}

// SavePlot は拡張子から形式を決めて p をファイルに保存します。
func SavePlot(p *plot.Plot, width, height vg.Length, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return errors.NewValidationError("path", "missing file extension", path)
	}
	output, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create plot file")
	}
	return WriteClosePlot(p, width, height, output, format)
}
