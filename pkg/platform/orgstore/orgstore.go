// Package orgstore resolves org connection parameters from the yaml auth
// file that login tooling maintains. One entry per connected org plus an
// activeOrg pointer for the "no org named" case.
package orgstore

import (
	"context"
	"fmt"
	"os"

	"go.orgdiff.io/orgdiff/pkg/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Store struct {
	logger            *zap.Logger
	path              string
	defaultAPIVersion string
}

type authFile struct {
	ActiveOrg string              `yaml:"activeOrg"`
	Orgs      map[string]orgEntry `yaml:"orgs"`
}

type orgEntry struct {
	InstanceURL string `yaml:"instanceUrl"`
	AccessToken string `yaml:"accessToken"`
	APIVersion  string `yaml:"apiVersion"`
}

func New(logger *zap.Logger, path string, defaultAPIVersion string) *Store {
	return &Store{
		logger:            logger,
		path:              path,
		defaultAPIVersion: defaultAPIVersion,
	}
}

// Resolve returns the connection descriptor for the named org, or for the
// active org when orgID is empty. Every failure is a credential error: the
// caller treats it as fatal before any network activity.
func (s *Store) Resolve(_ context.Context, orgID string) (models.OrgAuth, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.OrgAuth{}, models.NewAppError(models.ErrCredential,
			fmt.Errorf("could not read auth file %s: %w", s.path, err))
	}

	var af authFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return models.OrgAuth{}, models.NewAppError(models.ErrCredential,
			fmt.Errorf("malformed auth file %s: %w", s.path, err))
	}

	id := orgID
	if id == "" {
		if af.ActiveOrg == "" {
			return models.OrgAuth{}, models.NewAppError(models.ErrCredential,
				fmt.Errorf("no active org set in %s, pass an org id or log in first", s.path))
		}
		id = af.ActiveOrg
	}

	entry, ok := af.Orgs[id]
	if !ok {
		return models.OrgAuth{}, models.NewAppError(models.ErrCredential,
			fmt.Errorf("no active session found for org %q, list connected orgs and log in first", id))
	}
	if entry.InstanceURL == "" || entry.AccessToken == "" {
		return models.OrgAuth{}, models.NewAppError(models.ErrCredential,
			fmt.Errorf("incomplete session for org %q in %s", id, s.path))
	}

	apiVersion := entry.APIVersion
	if apiVersion == "" {
		apiVersion = s.defaultAPIVersion
	}

	s.logger.Debug("resolved org session",
		zap.String("org_id", id),
		zap.String("instance_url", entry.InstanceURL),
		zap.String("api_version", apiVersion))

	return models.OrgAuth{
		InstanceURL: entry.InstanceURL,
		AccessToken: entry.AccessToken,
		APIVersion:  apiVersion,
	}, nil
}
