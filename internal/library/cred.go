package library

import (
	"context"
	"encoding/base64"
	"fmt"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	//default enc key
	_ "github.com/viant/scy/kms/blowfish"
	"sync"
)

const defaultCredKey = "blowfish://default"

//Secret represents object store secret location
type Secret struct {
	URL string
	Key string
	ID  string
}

type credentialsRegistry struct {
	registry map[string]*cred.Aws
	sync.RWMutex
	service *scy.Service
}

func (r *credentialsRegistry) lookup(ctx context.Context, resource *scy.Resource) (*cred.Aws, error) {
	r.RWMutex.RLock()
	result, ok := r.registry[resource.URL]
	r.RWMutex.RUnlock()
	if ok {
		return result, nil
	}

	secrets, err := r.service.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load secret from :%v, %w", resource.URL, err)
	}
	awsCred, ok := secrets.Target.(*cred.Aws)
	if !ok {
		return nil, fmt.Errorf("expected %T, but had %T", awsCred, secrets.Target)
	}
	r.RWMutex.Lock()
	r.registry[resource.URL] = awsCred
	r.RWMutex.Unlock()
	return awsCred, nil
}

var credRegistry = credentialsRegistry{registry: map[string]*cred.Aws{}, service: scy.New()}

//Credentials merges secret referenced credentials into settings, settings values take precedence
func Credentials(ctx context.Context, settings *cred.Aws, secret *Secret) (*cred.Aws, error) {
	result := &cred.Aws{}
	if settings != nil {
		*result = *settings
	}
	if secret == nil || (secret.URL == "" && secret.ID == "") {
		return result, nil
	}
	secretURL := decoded(secret.URL)
	secretKey := decoded(secret.Key)
	if secretURL != "" && secretKey == "" {
		secretKey = defaultCredKey
	}
	var awsCred *cred.Aws
	var err error
	if secret.ID != "" {
		resource := scy.Resources().Lookup(secret.ID)
		if resource == nil {
			return nil, fmt.Errorf("failed to lookup secretID: %v", secret.ID)
		}
		if awsCred, err = credRegistry.lookup(ctx, resource); err != nil {
			return nil, err
		}
	}
	if awsCred == nil && secretURL != "" {
		if awsCred, err = credRegistry.lookup(ctx, scy.NewResource(&cred.Aws{}, secretURL, secretKey)); err != nil {
			return nil, err
		}
	}
	if awsCred == nil {
		return result, nil
	}
	if result.Key == "" {
		result.Key = awsCred.Key
		result.Secret = awsCred.Secret
	}
	if result.Token == "" {
		result.Token = awsCred.Token
	}
	if result.Region == "" {
		result.Region = awsCred.Region
	}
	if result.Endpoint == "" {
		result.Endpoint = awsCred.Endpoint
	}
	if result.Session == nil {
		result.Session = awsCred.Session
	}
	return result, nil
}

func decoded(value string) string {
	if value == "" {
		return value
	}
	if data, err := base64.RawURLEncoding.DecodeString(value); err == nil {
		return string(data)
	}
	return value
}
