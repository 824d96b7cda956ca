package signature

import (
	"fmt"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"sync"
)

//Kind represents function kind
type Kind int

const (
	//KindScalar scalar function
	KindScalar Kind = iota
	//KindAggregate aggregate function
	KindAggregate
)

func (k Kind) String() string {
	if k == KindAggregate {
		return "aggregate"
	}
	return "scalar"
}

//Catalog represents native function signatures registry.
//Registration and lookup are safe for concurrent use.
type Catalog struct {
	sync.RWMutex
	scalars        map[string][]*Signature
	aggregates     map[string][]*AggregateSignature
	scalarNames    []string
	aggregateNames []string
	metrics        *metrics

	Logger *zap.Logger
}

//Option represents catalog option
type Option func(c *Catalog)

//WithLogger sets catalog logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		c.Logger = logger.With(zap.String("service", "udf-catalog"))
	}
}

//RegisterScalar registers scalar signature, registration with existing key replaces prior entry
func (c *Catalog) RegisterScalar(name string, returnType arrow.DataType, nullable bool, args []arrow.DataType) {
	signature := &Signature{Name: name, Args: cloneTypes(args), ReturnType: returnType, Nullable: nullable}
	c.RWMutex.Lock()
	defer c.RWMutex.Unlock()
	c.metrics.registrations.WithLabelValues(KindScalar.String()).Inc()
	candidates, ok := c.scalars[name]
	if !ok {
		c.scalarNames = append(c.scalarNames, name)
	}
	for i, candidate := range candidates {
		if candidate.Matches(args) {
			c.duplicate(KindScalar, candidate, signature)
			candidates[i] = signature
			return
		}
	}
	c.scalars[name] = append(candidates, signature)
}

//RegisterAggregate registers aggregate signature, intermediate has to be a struct type
func (c *Catalog) RegisterAggregate(name string, returnType arrow.DataType, nullable bool, args []arrow.DataType, intermediate arrow.DataType) error {
	structType, ok := intermediate.(*arrow.StructType)
	if !ok {
		return fmt.Errorf("failed to register aggregate %v%v: %w, but had: %v", name, TypesString(args), ErrNotRecordType, intermediate)
	}
	signature := &AggregateSignature{
		Signature:    Signature{Name: name, Args: cloneTypes(args), ReturnType: returnType, Nullable: nullable},
		Intermediate: newIntermediate(structType),
	}
	c.RWMutex.Lock()
	defer c.RWMutex.Unlock()
	c.metrics.registrations.WithLabelValues(KindAggregate.String()).Inc()
	candidates, ok := c.aggregates[name]
	if !ok {
		c.aggregateNames = append(c.aggregateNames, name)
	}
	for i, candidate := range candidates {
		if candidate.Matches(args) {
			c.duplicate(KindAggregate, &candidate.Signature, &signature.Signature)
			candidates[i] = signature
			return nil
		}
	}
	c.aggregates[name] = append(candidates, signature)
	return nil
}

func (c *Catalog) duplicate(kind Kind, prev, next *Signature) {
	c.metrics.duplicates.WithLabelValues(kind.String()).Inc()
	c.Logger.Warn("Replacing registered signature",
		zap.Stringer("kind", kind),
		zap.String("function", next.Name),
		zap.String("args", TypesString(next.Args)),
		zap.Stringer("previous", prev.ReturnType),
		zap.Stringer("return", next.ReturnType))
}

//LookupScalar returns scalar signature exactly matching name and args
func (c *Catalog) LookupScalar(name string, args []arrow.DataType) (*Signature, error) {
	c.RWMutex.RLock()
	defer c.RWMutex.RUnlock()
	for _, candidate := range c.scalars[name] {
		if candidate.Matches(args) {
			return candidate, nil
		}
	}
	return nil, c.miss(KindScalar, name, args)
}

//LookupAggregate returns aggregate signature exactly matching name and args
func (c *Catalog) LookupAggregate(name string, args []arrow.DataType) (*AggregateSignature, error) {
	c.RWMutex.RLock()
	defer c.RWMutex.RUnlock()
	for _, candidate := range c.aggregates[name] {
		if candidate.Matches(args) {
			return candidate, nil
		}
	}
	return nil, c.miss(KindAggregate, name, args)
}

func (c *Catalog) miss(kind Kind, name string, args []arrow.DataType) error {
	c.metrics.misses.WithLabelValues(kind.String()).Inc()
	return &UnregisteredFunctionError{Kind: kind, Name: name, Args: TypesString(args)}
}

//ScalarNames returns registered scalar names in registration order
func (c *Catalog) ScalarNames() []string {
	c.RWMutex.RLock()
	defer c.RWMutex.RUnlock()
	return append([]string{}, c.scalarNames...)
}

//AggregateNames returns registered aggregate names in registration order
func (c *Catalog) AggregateNames() []string {
	c.RWMutex.RLock()
	defer c.RWMutex.RUnlock()
	return append([]string{}, c.aggregateNames...)
}

//Len returns number of registered signatures
func (c *Catalog) Len() int {
	c.RWMutex.RLock()
	defer c.RWMutex.RUnlock()
	result := 0
	for _, candidates := range c.scalars {
		result += len(candidates)
	}
	for _, candidates := range c.aggregates {
		result += len(candidates)
	}
	return result
}

//Reset removes all registered signatures
func (c *Catalog) Reset() {
	c.RWMutex.Lock()
	defer c.RWMutex.Unlock()
	c.scalars = map[string][]*Signature{}
	c.aggregates = map[string][]*AggregateSignature{}
	c.scalarNames = nil
	c.aggregateNames = nil
}

//PrometheusCollectors returns catalog metrics
func (c *Catalog) PrometheusCollectors() []prometheus.Collector {
	return c.metrics.collectors()
}

//NewCatalog creates an empty catalog
func NewCatalog(options ...Option) *Catalog {
	result := &Catalog{
		scalars:    map[string][]*Signature{},
		aggregates: map[string][]*AggregateSignature{},
		metrics:    newMetrics(),
		Logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(result)
	}
	return result
}
