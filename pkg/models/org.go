package models

// OrgAuth holds the connection parameters for one Salesforce org, resolved
// once per invocation and immutable afterwards.
type OrgAuth struct {
	InstanceURL string `json:"instanceUrl" yaml:"instanceUrl"`
	AccessToken string `json:"accessToken" yaml:"accessToken"`
	APIVersion  string `json:"apiVersion" yaml:"apiVersion"`
}

// SameOrg reports whether two descriptors point at the same org session.
// APIVersion does not participate: the same org reached at two api versions
// serves identical layout metadata.
func (a OrgAuth) SameOrg(b OrgAuth) bool {
	return a.InstanceURL == b.InstanceURL && a.AccessToken == b.AccessToken
}
