// Package testutil holds helpers for tests of beankit components and
// containers.
//
//	func TestService(t *testing.T) {
//	    c := testutil.Container(t)
//	    svc := bean.MustGet[*Service](context.Background(), c)
//	    ...
//	}
package testutil
