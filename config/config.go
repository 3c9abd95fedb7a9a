// Package config provides configuration structures for the application.
package config

import "time"

type Config struct {
	Debug       bool    `json:"debug" yaml:"debug" mapstructure:"debug"`
	DisableANSI bool    `json:"disableANSI" yaml:"disableANSI" mapstructure:"disableANSI"`
	ConfigPath  string  `json:"configPath" yaml:"configPath" mapstructure:"configPath"`
	Compare     Compare `json:"compare" yaml:"compare" mapstructure:"compare"`
}

type Compare struct {
	// Layouts is the comma-separated list of layout api names in
	// "Object-Layout Name" form, in the order rows should appear.
	Layouts         string        `json:"layouts" yaml:"layouts" mapstructure:"layouts"`
	SourceOrg       string        `json:"sourceOrg" yaml:"sourceOrg" mapstructure:"sourceOrg"`
	TargetOrg       string        `json:"targetOrg" yaml:"targetOrg" mapstructure:"targetOrg"`
	Output          string        `json:"output" yaml:"output" mapstructure:"output"`
	APIVersion      string        `json:"apiVersion" yaml:"apiVersion" mapstructure:"apiVersion"`
	AuthFile        string        `json:"authFile" yaml:"authFile" mapstructure:"authFile"`
	PollInterval    time.Duration `json:"pollInterval" yaml:"pollInterval" mapstructure:"pollInterval"`
	RetrieveTimeout time.Duration `json:"retrieveTimeout" yaml:"retrieveTimeout" mapstructure:"retrieveTimeout"`
}
