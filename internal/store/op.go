package store

// Op tracks the asynchronous confirmation of an optimistic mutation. The
// mutation itself is visible in the store before the Op is returned; waiting
// on the Op reveals whether it was committed or rolled back.
type Op struct {
	done chan struct{}
	err  error
}

func newOp() *Op {
	return &Op{done: make(chan struct{})}
}

// resolvedOp returns an Op that has already settled, used for local no-ops
// that never reach the backing service.
func resolvedOp() *Op {
	op := newOp()
	close(op.done)
	return op
}

func (o *Op) finish(err error) {
	o.err = err
	close(o.done)
}

// Done is closed once the backing service has confirmed or rejected the
// mutation.
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the mutation settles and returns the rejection error if
// it was rolled back.
func (o *Op) Wait() error {
	<-o.done
	return o.err
}
