package consts

const (
	ENV_PRODUCTION  = "production"
	ENV_DEVELOPMENT = "development"
	ENV_TEST        = "test"

	DEFAULT_CONFIG_PATH = "config/config.yaml"

	// 环境变量覆盖前缀，例如 TODO_HTTP_ADDRESS
	ENV_PREFIX = "TODO_"

	KEY_TraceID   = "trace_id"
	KEY_SpanID    = "span_id"
	KEY_RequestID = "request_id"
)
