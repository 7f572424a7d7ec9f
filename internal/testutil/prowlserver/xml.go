package prowlserver

import "encoding/xml"

// xmlResponse Prowl API 응답 본문 형식
//
//	<prowl><success code="200" remaining="999" resetdate="1700000000"/></prowl>
//	<prowl><error code="401">Invalid API key</error></prowl>
type xmlResponse struct {
	XMLName xml.Name    `xml:"prowl"`
	Success *xmlSuccess `xml:"success,omitempty"`
	Error   *xmlError   `xml:"error,omitempty"`
}

type xmlSuccess struct {
	Code      int   `xml:"code,attr"`
	Remaining int   `xml:"remaining,attr"`
	ResetDate int64 `xml:"resetdate,attr"`
}

type xmlError struct {
	Code    int    `xml:"code,attr"`
	Message string `xml:",chardata"`
}
