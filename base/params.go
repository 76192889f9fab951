package base

// ParamName is the name of a hyper-parameter.
type ParamName string

// Predefined parameter names
const (
	Sim         ParamName = "sim"          // similarity function
	K           ParamName = "k"            // neighborhood size
	Normalizer  ParamName = "normalizer"   // rating normalization method
	RandomState ParamName = "random_state" // random seed
	Jobs        ParamName = "jobs"         // number of concurrent jobs
)

// Normalization methods
const (
	NormalizerNone   = "none"
	NormalizerZScore = "zscore"
)

// Params for a model. Given by:
//
//	base.Params{
//	   base.K:   10,
//	   base.Sim: base.PearsonSimilarity,
//	}
type Params map[ParamName]interface{}

// Copy parameters.
func (parameters Params) Copy() Params {
	newParams := make(Params)
	for k, v := range parameters {
		newParams[k] = v
	}
	return newParams
}

// Merge another group of parameters into the receiver.
func (parameters Params) Merge(params Params) {
	for k, v := range params {
		parameters[k] = v
	}
}

// GetInt gets an integer parameter.
func (parameters Params) GetInt(name ParamName, _default int) int {
	if val, exist := parameters[name]; exist {
		return val.(int)
	}
	return _default
}

// GetInt64 gets an int64 parameter. An int value is accepted as well.
func (parameters Params) GetInt64(name ParamName, _default int64) int64 {
	if val, exist := parameters[name]; exist {
		switch value := val.(type) {
		case int64:
			return value
		case int:
			return int64(value)
		}
	}
	return _default
}

// GetBool gets a boolean parameter.
func (parameters Params) GetBool(name ParamName, _default bool) bool {
	if val, exist := parameters[name]; exist {
		return val.(bool)
	}
	return _default
}

// GetFloat64 gets a float parameter.
func (parameters Params) GetFloat64(name ParamName, _default float64) float64 {
	if val, exist := parameters[name]; exist {
		return val.(float64)
	}
	return _default
}

// GetString gets a string parameter.
func (parameters Params) GetString(name ParamName, _default string) string {
	if val, exist := parameters[name]; exist {
		return val.(string)
	}
	return _default
}

// GetSim gets a similarity function from parameters.
func (parameters Params) GetSim(name ParamName, _default FuncSimilarity) FuncSimilarity {
	if val, exist := parameters[name]; exist {
		return val.(FuncSimilarity)
	}
	return _default
}
