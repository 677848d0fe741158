package store

const auditTable = "audit_log"

var auditColumns = []string{
	"kind",
	"created_at",
	"elapsed_us",
	"client_ip",
	"method",
	"uri",
	"content_length",
	"identity",
	"message",
	"key_length",
	"key_provided",
	"valid",
	"source",
	"use_session",
	"status",
}
