package selector

type options struct {
	concurrency int
}

type Option func(*options)

// WithConcurrency fans the scan out over n workers, one pump per job. The
// result order still follows the catalog enumeration order.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 1 {
			o.concurrency = n
		}
	}
}
