// Package library resolves user supplied native library references into concrete local
// library files. Relative references are resolved according to the deployment mode and
// the process role; absolute references are fetched, and unpacked when they are archives,
// into a process local workspace. Directories are expanded into the .so files they hold.
package library

import (
	"context"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"path/filepath"
)

//Environment represents resolving process deployment
type Environment struct {
	Role Role
	Mode Mode
	//FilesDir materialized job files directory
	FilesDir string
}

//Resolver resolves library references into local library files
type Resolver struct {
	Environment
	localizer *Localizer
	Logger    *zap.Logger
}

//WithLogger sets resolver logger
func (r *Resolver) WithLogger(logger *zap.Logger) {
	r.Logger = logger.With(zap.String("service", "udf-library-resolver"))
	r.localizer.Logger = r.Logger
}

//Resolve returns local library files for references, preserving reference order.
//Absolute references are fetched concurrently, the first failure aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, references []string) ([]string, error) {
	var refs []string
	var actions []Action
	localized := map[string]string{}
	for _, reference := range references {
		for _, ref := range Split(reference) {
			action := Plan(r.Mode, r.Role, Classify(ref))
			if action == ActionReject {
				return nil, &InvalidArgumentError{Reference: ref, Mode: r.Mode, Role: r.Role}
			}
			if action == ActionFetch {
				name, err := LocalName(ref)
				if err != nil {
					source, _ := ParseName(ref)
					return nil, &ArtifactUnpackFailure{Source: source, Err: err}
				}
				if prev, ok := localized[name]; ok {
					return nil, &NameConflictError{Name: name, First: prev, Second: ref}
				}
				localized[name] = ref
			}
			refs = append(refs, ref)
			actions = append(actions, action)
		}
	}
	locations := make([]string, len(refs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		switch actions[i] {
		case ActionPassThrough:
			locations[i] = ref
		case ActionResolveFilesDir:
			locations[i] = r.filesDirPath(ref)
		case ActionFetch:
			group.Go(func() error {
				location, err := r.localizer.Localize(groupCtx, ref)
				locations[i] = location
				return err
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var result []string
	for _, location := range locations {
		expanded, err := Expand(location, LibraryExtension)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	r.Logger.Info("Resolved native libraries",
		zap.Stringer("mode", r.Mode),
		zap.Stringer("role", r.Role),
		zap.Int("references", len(refs)),
		zap.Strings("libraries", result))
	return result, nil
}

func (r *Resolver) filesDirPath(ref string) string {
	location := filepath.Join(r.FilesDir, ref)
	if absolute, err := filepath.Abs(location); err == nil {
		return absolute
	}
	return location
}

//NewResolver creates a resolver
func NewResolver(env Environment, localizer *Localizer) *Resolver {
	return &Resolver{Environment: env, localizer: localizer, Logger: zap.NewNop()}
}
