package consts

const (
	ApplicationName    = "AriaVT Server"
	ApplicationVersion = "v0.3.0"
)
