package http

import "time"

type HttpOpts func(*httpConfig)

// Timeouts groups the client's network deadlines; zero fields keep the defaults
type Timeouts struct {
	Connect        time.Duration
	Request        time.Duration
	KeepAlive      time.Duration
	TLSHandshake   time.Duration
	ResponseHeader time.Duration
	IdleConn       time.Duration
}

func WithTimeouts(t Timeouts) HttpOpts {
	return func(c *httpConfig) {
		setIfPositive(&c.connClientTimeout, t.Connect)
		setIfPositive(&c.requestTimeout, t.Request)
		setIfPositive(&c.clientKeepAlive, t.KeepAlive)
		setIfPositive(&c.tlsHandshakeTimeout, t.TLSHandshake)
		setIfPositive(&c.responseHeaderTimeout, t.ResponseHeader)
		setIfPositive(&c.idleConnTimeout, t.IdleConn)
	}
}

func WithRequestTimeout(timeout time.Duration) HttpOpts {
	return WithTimeouts(Timeouts{Request: timeout})
}

// WithConnectionPool sizes the idle connection pool; non-positive values keep the defaults
func WithConnectionPool(maxIdle, maxIdlePerHost int) HttpOpts {
	return func(c *httpConfig) {
		if maxIdle > 0 {
			c.maxIdleConns = maxIdle
		}
		if maxIdlePerHost > 0 {
			c.maxIdleConnsPerHost = maxIdlePerHost
		}
	}
}

// WithTransport wraps the client transport; wrappers apply in registration order
func WithTransport(transport TransportFunc) HttpOpts {
	return func(c *httpConfig) {
		c.transports = append(c.transports, transport)
	}
}

func WithInsecureSkipVerify(skip bool) HttpOpts {
	return func(c *httpConfig) {
		c.insecureSkipVerify = skip
	}
}

func setIfPositive(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
