package filetransfer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adwski/chatsession/client/model"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// DefaultMaxSize bounds files accepted for upload.
const DefaultMaxSize int64 = 32 << 20

const (
	dataURLPrefix = "data:"
	base64Marker  = ";base64"
)

var (
	ErrFileRead     = errors.New("unable to read file")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidData  = errors.New("invalid file data url")
)

type (
	// Source is a named binary resource.
	Source interface {
		Name() string
		Open() (io.ReadCloser, error)
	}

	Config struct {
		Logger *zerolog.Logger
		// MaxSize in bytes, zero disables the limit.
		MaxSize int64
	}

	Encoder struct {
		logger  zerolog.Logger
		maxSize int64
	}

	result struct {
		data []byte
		err  error
	}

	// ctxReader stops reading once ctx is done.
	ctxReader struct {
		ctx context.Context
		r   io.Reader
	}
)

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func NewEncoder(cfg Config) *Encoder {
	return &Encoder{
		logger:  cfg.Logger.With().Str("component", "file-encoder").Logger(),
		maxSize: cfg.MaxSize,
	}
}

// Encode reads src fully and returns it as a data URL. Cancellation of ctx
// resolves the call early and stops the read at the next chunk.
func (e *Encoder) Encode(ctx context.Context, src Source) (model.EncodedFile, error) {
	resc := make(chan result, 1)
	go func() {
		data, rErr := e.read(ctx, src)
		resc <- result{data: data, err: rErr}
	}()

	select {
	case <-ctx.Done():
		return model.EncodedFile{}, errors.Join(ErrFileRead, ctx.Err())
	case res := <-resc:
		if res.err != nil {
			return model.EncodedFile{}, res.err
		}
		e.logger.Debug().
			Str("filename", src.Name()).
			Int("size", len(res.data)).
			Msg("file encoded")
		return model.EncodedFile{
			Filename: src.Name(),
			Data:     EncodeData(res.data),
		}, nil
	}
}

func (e *Encoder) read(ctx context.Context, src Source) ([]byte, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, errors.Join(ErrFileRead, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = ctxReader{ctx: ctx, r: rc}
	if e.maxSize > 0 {
		r = io.LimitReader(r, e.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrFileRead, err)
	}
	if e.maxSize > 0 && int64(len(data)) > e.maxSize {
		return nil, errors.Join(ErrFileRead, ErrFileTooLarge,
			fmt.Errorf("%s is larger than %d bytes", src.Name(), e.maxSize))
	}
	return data, nil
}

// EncodeData renders data as a base64 data URL with a sniffed media type.
func EncodeData(data []byte) string {
	mediaType := strings.ReplaceAll(mimetype.Detect(data).String(), " ", "")
	return dataURLPrefix + mediaType + base64Marker + "," + base64.StdEncoding.EncodeToString(data)
}

// DecodeData is the inverse of EncodeData.
func DecodeData(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return nil, "", ErrInvalidData
	}
	header, payload, ok := strings.Cut(s[len(dataURLPrefix):], ",")
	if !ok {
		return nil, "", ErrInvalidData
	}
	mediaType, ok := strings.CutSuffix(header, base64Marker)
	if !ok {
		return nil, "", ErrInvalidData
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Join(ErrInvalidData, err)
	}
	return data, mediaType, nil
}

type osFile string

// OSFile is a Source backed by a local path. Its name is the base name.
func OSFile(p string) Source { return osFile(p) }

func (f osFile) Name() string { return filepath.Base(string(f)) }

func (f osFile) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

type fsFile struct {
	fsys fs.FS
	name string
}

// FSFile is a Source backed by a file in fsys.
func FSFile(fsys fs.FS, name string) Source { return fsFile{fsys: fsys, name: name} }

func (f fsFile) Name() string { return path.Base(f.name) }

func (f fsFile) Open() (io.ReadCloser, error) {
	return f.fsys.Open(f.name)
}
