package filesystem

import (
	"github.com/GriffinCanCode/fileaccess/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileaccess/internal/logging"
	"go.uber.org/zap"
)

// Defaults for Config fields left zero
const (
	DefaultChunkSize     = 64 * 1024
	DefaultHighWaterMark = 16 * 1024
	DefaultEncoding      = "utf-8"
)

// Config configures an Ops.
type Config struct {
	// ChunkSize is the read size handed to OnData hooks
	ChunkSize int
	// HighWaterMark is the buffered byte count at which a write sink reports backpressure
	HighWaterMark int
	// Encoding is the default text encoding for streams ("auto" detects)
	Encoding string

	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Ops carries the shared settings for walks, path building and streams.
type Ops struct {
	chunkSize     int
	highWaterMark int
	encoding      string
	log           *logging.Logger
	metrics       *monitoring.Metrics
}

// NewOps fills zero fields of cfg with defaults.
func NewOps(cfg Config) *Ops {
	ops := &Ops{
		chunkSize:     cfg.ChunkSize,
		highWaterMark: cfg.HighWaterMark,
		encoding:      cfg.Encoding,
		log:           logging.OrNop(cfg.Logger).Component("filesystem"),
		metrics:       cfg.Metrics,
	}
	if ops.chunkSize <= 0 {
		ops.chunkSize = DefaultChunkSize
	}
	if ops.highWaterMark <= 0 {
		ops.highWaterMark = DefaultHighWaterMark
	}
	if ops.encoding == "" {
		ops.encoding = DefaultEncoding
	}
	return ops
}

// ChunkSize returns the configured read size.
func (o *Ops) ChunkSize() int { return o.chunkSize }

// Encoding returns the default stream encoding.
func (o *Ops) Encoding() string { return o.encoding }

// Logger returns the component logger.
func (o *Ops) Logger() *logging.Logger { return o.log }

// Metrics returns the collector, possibly nil.
func (o *Ops) Metrics() *monitoring.Metrics { return o.metrics }

func opField(op interface{ String() string }) zap.Field {
	return zap.String("op_id", op.String())
}
