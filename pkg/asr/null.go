package asr

// nullEngine recognizes nothing. It is registered as "null" so the pipeline
// can run end to end on machines without a model, for development and tests.
type nullEngine struct{}

type nullStream struct{}

func init() {
	Handle("null", func(Config) (Engine, error) {
		return nullEngine{}, nil
	})
}

func (nullEngine) NewStream() (Stream, error) { return nullStream{}, nil }
func (nullEngine) Close() error               { return nil }

func (nullStream) AcceptWaveform(int, []float32) error { return nil }
func (nullStream) Decode() error                       { return nil }
func (nullStream) Result() string                      { return "" }
func (nullStream) Close() error                        { return nil }
