/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package httpx plugs rescue classes into net/http.
//
// Handler builds a host per request and dispatches the error its serve
// function returns. A rescue handler may write its own response through the
// host; otherwise the adapter answers with the mapped status and a JSON
// google.rpc.ErrorInfo body:
//
//	type page struct {
//	    w http.ResponseWriter
//	    r *http.Request
//	}
//
//	func (p *page) RescueClass() *rescue.Class { return pageClass }
//	func (p *page) NotFound()                  { http.NotFound(p.w, p.r) }
//
//	mux.Handle("/gates/{id}", httpx.Handler(
//	    func(w http.ResponseWriter, r *http.Request) *page { return &page{w, r} },
//	    (*page).show,
//	))
package httpx
