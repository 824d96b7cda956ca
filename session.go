package nativeudf

import (
	"context"
	"fmt"
	"github.com/viant/nativeudf/internal/bridge"
	"github.com/viant/nativeudf/internal/library"
	"github.com/viant/nativeudf/internal/signature"
	"github.com/viant/nativeudf/internal/typecodec"
	"go.uber.org/zap"
	"sync"
)

//Session owns native function catalog and library resolution of a hosting process
type Session struct {
	config    *Config
	role      Role
	catalog   *signature.Catalog
	codec     signature.Codec
	source    signature.SignatureSource
	localizer *library.Localizer
	resolver  *library.Resolver
	libraries []string

	initOnce   sync.Once
	initErr    error
	sourceOnce sync.Once
	sourceErr  error

	Logger *zap.Logger
}

//Option represents session option
type Option func(s *Session)

//WithLogger sets session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.Logger = logger.With(zap.String("service", "nativeudf"), zap.Stringer("role", s.role))
	}
}

//WithSignatureSource sets native component registering functions on first enumeration
func WithSignatureSource(source SignatureSource) Option {
	return func(s *Session) {
		s.source = source
	}
}

//WithFetcher registers scheme specific artifact fetcher
func WithFetcher(scheme string, fetcher Fetcher) Option {
	return func(s *Session) {
		s.localizer.Register(scheme, fetcher)
	}
}

//WithCodec sets registration payload codec
func WithCodec(codec signature.Codec) Option {
	return func(s *Session) {
		s.codec = codec
	}
}

//Init resolves role library references once and writes resolved paths back to the worker key
func (s *Session) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.init(ctx)
	})
	return s.initErr
}

func (s *Session) init(ctx context.Context) error {
	references := library.Split(s.config.LibraryPathsFor(s.role))
	if len(references) == 0 {
		s.Logger.Debug("No native libraries configured")
		return nil
	}
	libraries, err := s.resolver.Resolve(ctx, references)
	if err != nil {
		return fmt.Errorf("failed to resolve native libraries: %w", err)
	}
	s.libraries = libraries
	s.config.SetLibraryPaths(library.Join(libraries))
	return nil
}

//Libraries returns resolved library files
func (s *Session) Libraries() []string {
	return s.libraries
}

//Catalog returns session catalog
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

//Port returns registration port, the catalog sole mutation path for the native backend
func (s *Session) Port() Port {
	return signature.NewPort(s.catalog, s.codec)
}

//Enabled returns true when any native library is configured
func (s *Session) Enabled() bool {
	return len(library.Split(s.config.LibraryPathsFor(Coordinator))) > 0
}

//Functions returns bindable descriptors of registered functions, nothing when no native library is configured
func (s *Session) Functions(ctx context.Context) ([]*Descriptor, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if s.source != nil {
		s.sourceOnce.Do(func() {
			s.sourceErr = s.source.Register(ctx, s.Port())
		})
		if s.sourceErr != nil {
			return nil, fmt.Errorf("failed to register native functions: %w", s.sourceErr)
		}
	}
	descriptors := bridge.Descriptors(s.catalog, true)
	s.Logger.Info("Enumerated native functions",
		zap.Int("scalar", len(s.catalog.ScalarNames())),
		zap.Int("aggregate", len(s.catalog.AggregateNames())))
	return descriptors, nil
}

//Close releases registered signatures
func (s *Session) Close() error {
	s.catalog.Reset()
	return nil
}

//NewSession creates a session
func NewSession(config *Config, role Role, options ...Option) *Session {
	result := &Session{
		config: config,
		role:   role,
		codec:  typecodec.New(),
		Logger: zap.NewNop(),
	}
	result.localizer = library.NewLocalizer(config.Workspace, library.NewStorageFetcher(nil))
	s3Fetcher := library.NewLazyFetcher(func(ctx context.Context) (library.Fetcher, error) {
		settings, err := library.Credentials(ctx, &config.Aws, &config.Secret)
		if err != nil {
			return nil, err
		}
		return library.NewS3Fetcher(ctx, settings)
	})
	for _, scheme := range library.S3Schemes {
		result.localizer.Register(scheme, s3Fetcher)
	}
	for _, option := range options {
		option(result)
	}
	result.catalog = signature.NewCatalog(signature.WithLogger(result.Logger))
	result.resolver = library.NewResolver(library.Environment{
		Role:     role,
		Mode:     config.Mode(),
		FilesDir: config.FilesDir,
	}, result.localizer)
	result.resolver.WithLogger(result.Logger)
	return result
}
