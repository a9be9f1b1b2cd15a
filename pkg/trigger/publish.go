package trigger

import "context"

// PublishFunc is the signature of Client.Publish and Client.Trigger.
type PublishFunc func(ctx context.Context, name string, data any) error

// PublishMiddleware wraps a PublishFunc. It is the extension point for hosts
// that need to change how events are published, for example to buffer them
// or to decorate every publish, while still reaching Trigger through next.
//
//	audit := func(next trigger.PublishFunc) trigger.PublishFunc {
//	    return func(ctx context.Context, name string, data any) error {
//	        log.Printf("publishing %s", name)
//	        return next(ctx, name, data)
//	    }
//	}
type PublishMiddleware func(next PublishFunc) PublishFunc

// ChainPublish applies middleware to base, first middleware outermost.
func ChainPublish(base PublishFunc, middleware ...PublishMiddleware) PublishFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		base = middleware[i](base)
	}
	return base
}

// Publisher is the publishing surface of a Client. Hosts that embed *Client
// and declare their own Publish still satisfy it, and may call the embedded
// c.Client.Publish as their parent implementation.
type Publisher interface {
	Publish(ctx context.Context, name string, data any) error
}

var _ Publisher = (*Client)(nil)
