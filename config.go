package nativeudf

import (
	"fmt"
	"github.com/viant/nativeudf/internal/library"
	"github.com/viant/scy/cred"
	"github.com/viant/toolbox"
	"os"
	"path/filepath"
	"strings"
)

const (
	//KeyLibraryPaths worker side comma separated library references, resolved paths are written back here
	KeyLibraryPaths = "udf.libraryPaths"
	//KeyDriverLibraryPaths coordinator side comma separated library references
	KeyDriverLibraryPaths = "udf.driver.libraryPaths"
	//KeyMaster cluster master
	KeyMaster = "master"
	//KeyDeployMode cluster submission mode
	KeyDeployMode = "submit.deployMode"
	//KeyFilesDir materialized job files directory
	KeyFilesDir = "files.rootDir"
	//KeyWorkspace fetched artifacts directory
	KeyWorkspace = "udf.workspace"
	//KeyS3Region object store region
	KeyS3Region = "udf.s3.region"
	//KeyS3Endpoint custom object store endpoint, path style addressing is used when set
	KeyS3Endpoint = "udf.s3.endpoint"
	//KeyCredURL object store secret location
	KeyCredURL = "udf.credURL"
	//KeyCredKey object store secret encryption key
	KeyCredKey = "udf.credKey"
	//KeyCredID object store secret resource id
	KeyCredID = "udf.credID"
)

//Config represents native function session config
type Config struct {
	Values             map[string]string
	LibraryPaths       string
	DriverLibraryPaths string
	Master             string
	DeployMode         string
	FilesDir           string
	Workspace          string
	Secret             library.Secret
	cred.Aws
}

//NewConfig creates config from flat settings, unknown keys are kept in Values
func NewConfig(settings map[string]interface{}) (*Config, error) {
	cfg := &Config{Values: make(map[string]string, len(settings))}
	for k, v := range settings {
		if v == nil {
			continue
		}
		cfg.Values[k] = strings.TrimSpace(toolbox.AsString(v))
	}
	cfg.LibraryPaths = cfg.Values[KeyLibraryPaths]
	cfg.DriverLibraryPaths = cfg.Values[KeyDriverLibraryPaths]
	cfg.Master = cfg.Values[KeyMaster]
	cfg.DeployMode = cfg.Values[KeyDeployMode]
	cfg.FilesDir = cfg.Values[KeyFilesDir]
	cfg.Workspace = cfg.Values[KeyWorkspace]
	cfg.Region = cfg.Values[KeyS3Region]
	cfg.Endpoint = cfg.Values[KeyS3Endpoint]
	cfg.Secret.URL = cfg.Values[KeyCredURL]
	cfg.Secret.Key = cfg.Values[KeyCredKey]
	cfg.Secret.ID = cfg.Values[KeyCredID]
	if err := cfg.Init(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Init initialises defaults
func (c *Config) Init() error {
	if c.Values == nil {
		c.Values = map[string]string{}
	}
	if c.DeployMode != "" && c.DeployMode != library.DeployModeClient && c.DeployMode != library.DeployModeCluster {
		return fmt.Errorf("invalid %v: %v, expected %v or %v", KeyDeployMode, c.DeployMode, library.DeployModeClient, library.DeployModeCluster)
	}
	if c.FilesDir == "" {
		if wd, err := os.Getwd(); err == nil {
			c.FilesDir = wd
		}
	}
	if c.Workspace == "" {
		c.Workspace = filepath.Join(os.TempDir(), "nativeudf", fmt.Sprintf("%d", os.Getpid()))
	}
	return nil
}

//Mode returns deployment mode
func (c *Config) Mode() library.Mode {
	return library.ModeOf(c.Master, c.DeployMode)
}

//LibraryPathsFor returns role library references, coordinator falls back to worker references
func (c *Config) LibraryPathsFor(role Role) string {
	if role == Coordinator && c.DriverLibraryPaths != "" {
		return c.DriverLibraryPaths
	}
	return c.LibraryPaths
}

//SetLibraryPaths writes resolved worker library paths
func (c *Config) SetLibraryPaths(paths string) {
	c.LibraryPaths = paths
	c.Values[KeyLibraryPaths] = paths
}
