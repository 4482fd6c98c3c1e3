package constant

// Platform defaults - these describe the openedu.ru SSO deployment the tool was built against.
const (
	DefaultLoginURL = "https://sso.openedu.ru/login/"
	DefaultNextPage = "/oauth2/authorize%3Fstate%3DYpbWrm0u6VoE6nOvTi47PQLaC5CB5ZFJ%26redirect_uri%3Dhttps%3A//openedu.ru/complete/npoedsso/%26response_type%3Dcode%26client_id%3D808f52636759e3616f1a%26auth_entry%3Dlogin"

	// CSRFCookie is the cookie the identity provider stores its anti-forgery token in.
	CSRFCookie = "csrftoken"

	// LecturePrefix is the file name prefix for numbered content units.
	LecturePrefix = "Лекция"

	// VideoPattern matches playable video URLs embedded in lesson markup.
	VideoPattern = `https?://video[^\s"'<>]*?\.mp4`

	// TempSuffix marks a file that is still being transferred.
	TempSuffix = ".download"

	// ChunkSize is the size of a single streamed read.
	ChunkSize = 1024 * 1024

	// MaxPathLength is the historic Windows MAX_PATH, enforced on every platform.
	MaxPathLength = 260
)
