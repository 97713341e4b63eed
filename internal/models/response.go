package models

import "time"

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the server time in epoch milliseconds, the
// unit every response envelope carries.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

// NewOKResponse wraps data in a 200 envelope.
func NewOKResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// NewEntryResponse wraps a single entry in a 200 envelope.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(struct {
		Entry interface{} `json:"entry"`
	}{Entry: entry})
}

// NewListResponse wraps a list in a 200 envelope.
func NewListResponse(list interface{}) ResponseModel {
	return NewOKResponse(struct {
		List interface{} `json:"list"`
	}{List: list})
}
