package consts

const (

	// ConfigMaxUploadSize 图片最大上传限制 (MB)
	ConfigMaxUploadSize = "max_upload_size"

	// ConfigAllowFileExtensions 允许上传的文件扩展名 (逗号分隔)
	ConfigAllowFileExtensions = "allow_file_extensions"

	// ConfigBatchUploadMaxFiles 批量上传单次最多文件数
	ConfigBatchUploadMaxFiles = "batch_upload_max_files"

	// ConfigRateLimitEnabled 是否开启限流
	ConfigRateLimitEnabled = "rate_limit_enabled"

	// ConfigRateLimitAuthRPS 认证接口限流 RPS
	ConfigRateLimitAuthRPS = "rate_limit_auth_rps"

	// ConfigRateLimitAuthBurst 认证接口限流 Burst
	ConfigRateLimitAuthBurst = "rate_limit_auth_burst"

	// ConfigRateLimitUploadRPS 上传接口限流 RPS
	ConfigRateLimitUploadRPS = "rate_limit_upload_rps"

	// ConfigRateLimitUploadBurst 上传接口限流 Burst
	ConfigRateLimitUploadBurst = "rate_limit_upload_burst"

	// ConfigRateLimitAnalysisRPS 分析接口限流 RPS
	ConfigRateLimitAnalysisRPS = "rate_limit_analysis_rps"

	// ConfigRateLimitAnalysisBurst 分析接口限流 Burst
	ConfigRateLimitAnalysisBurst = "rate_limit_analysis_burst"

	// ConfigMaxRequestBodySize 最大请求体限制 (MB)
	ConfigMaxRequestBodySize = "max_request_body_size"

	// ConfigAnalysisTimeoutSeconds 调用外部分析服务的超时时间 (秒)
	ConfigAnalysisTimeoutSeconds = "analysis_timeout_seconds"

	// ConfigAnalysisMaxResponseSize 外部分析服务响应体上限 (MB)
	ConfigAnalysisMaxResponseSize = "analysis_max_response_size"
)
