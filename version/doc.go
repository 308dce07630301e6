// Package version exposes the build version of a beankit application.
package version
