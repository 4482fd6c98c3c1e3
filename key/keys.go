// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Authentication - these keys describe the identity provider and the account used to log in.
const (
	AuthUsername = "auth.username"
	AuthLoginURL = "auth.login_url"
	AuthNextPage = "auth.next_page"
)

// Download Layout - these keys govern where and how assets are written to disk.
const (
	DownloadPath          = "download.path"
	DownloadLecturePrefix = "download.lecture_prefix"
	DownloadChunkSize     = "download.chunk_size"
	DownloadMaxPathLength = "download.max_path_length"
	DownloadTempSuffix    = "download.temp_suffix"
)

// Content Discovery - these keys define what counts as a downloadable asset on a lesson page.
const (
	DiscoveryVideoPattern         = "discovery.video_pattern"
	DiscoveryAttachmentExtensions = "discovery.attachment_extensions"
)

// Network - these keys tune the shared session used for every request of a run.
const (
	NetworkRetryAttempts        = "network.retry_attempts"
	NetworkRetryBaseDelayMs     = "network.retry_base_delay_ms"
	NetworkRetryMaxDelayMs      = "network.retry_max_delay_ms"
	NetworkHeaderTimeoutSeconds = "network.header_timeout_seconds"
	NetworkUserAgent            = "network.user_agent"
	NetworkSpoofTLS             = "network.spoof_tls"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the command-line behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
