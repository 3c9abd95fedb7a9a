package models

import (
	"fmt"

	"github.com/fatih/color"
)

// LayoutMetadataType is the metadata type name used in retrieve manifests.
const LayoutMetadataType = "Layout"

var IsAnsiDisabled = false

var HighlightPassingString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgGreen).SprintFunc()(a...)
}

var HighlightFailingString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgRed).SprintFunc()(a...)
}

var HighlightWarningString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgYellow).SprintFunc()(a...)
}
