package schema

const ChatEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "assistant",
	"name": "chat_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "session", "type": "string"},
		{"name": "storefront", "type": "string"},
		{"name": "prompt", "type": "string"},
		{"name": "intent", "type": "string"},
		{"name": "outcome", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "unix_ms", "type": "long"}
	]
}`

type ChatEventV1 struct {
	EventID    string `avro:"event_id"`
	Session    string `avro:"session"`
	Storefront string `avro:"storefront"`
	Prompt     string `avro:"prompt"`
	Intent     string `avro:"intent"`
	Outcome    string `avro:"outcome"`
	ProductID  string `avro:"product_id"`
	UnixMs     int64  `avro:"unix_ms"`
}
