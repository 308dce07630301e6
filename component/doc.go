// Package component defines the lifecycle interface shared by the parts of a
// beankit application and a Registry that starts them in registration order
// and stops them in reverse order.
package component
