package compare

import (
	"context"

	"go.orgdiff.io/orgdiff/pkg/models"
)

type Service interface {
	Compare(ctx context.Context, req models.CompareRequest) (*models.RunSummary, error)
}

// OrgResolver yields connection parameters for a named org. An empty orgID
// selects the caller's active org.
type OrgResolver interface {
	Resolve(ctx context.Context, orgID string) (models.OrgAuth, error)
}

// MetadataClient fetches raw layout xml for every requested name from one
// org in a single retrieve job. Names absent from the result are not
// present in that org.
type MetadataClient interface {
	Retrieve(ctx context.Context, auth models.OrgAuth, layoutNames []string) (map[string]string, error)
}
