package consts

// ResultType 分析服务声明的结果类型。
type ResultType string

const (
	ResultTypeImage       ResultType = "image"
	ResultTypeMeasurement ResultType = "measurement"
)

// ResultTypes 全部受支持的结果类型，顺序即文档顺序。
var ResultTypes = []ResultType{ResultTypeImage, ResultTypeMeasurement}

func (t ResultType) Valid() bool {
	switch t {
	case ResultTypeImage, ResultTypeMeasurement:
		return true
	default:
		return false
	}
}
