package shader

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// MinGLVersion is the lowest OpenGL version the embedded shaders compile on.
const MinGLVersion = "3.3"

var glVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseGLVersion extracts the version number from a GL_VERSION string such as
// "4.6.0 NVIDIA 535.54.03" or "4.1 Metal - 88.1".
func ParseGLVersion(s string) (*semver.Version, error) {
	m := glVersionPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("no version number in %q", s)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(m[1] + "." + m[2] + "." + patch)
}

// CheckGLVersion returns an error if the driver reports a version below minimum.
func CheckGLVersion(reported, minimum string) error {
	v, err := ParseGLVersion(reported)
	if err != nil {
		return err
	}
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum GL version %q: %w", minimum, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("OpenGL %s is older than required %s", v, minimum)
	}
	return nil
}
