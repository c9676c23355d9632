package render

type dataResponse struct {
	Data interface{} `json:"data"`
}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
