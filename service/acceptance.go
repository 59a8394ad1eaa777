package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func decodeLines(body string) []interface{} {
	result := []interface{}{}
	dec := json.NewDecoder(strings.NewReader(body))
	for {
		var item interface{}
		if dec.Decode(&item) != nil {
			return result
		}
		result = append(result, item)
	}
}

// Acceptance runs the end-to-end scenarios against any http transport.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create document", func(a *biff.A) {
		resp := apiRequest("POST", "/documents").
			WithBodyJson(JSON{
				"name": "groceries",
			}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"name":      "groceries",
			"total":     0,
			"key_field": "id",
		})

		a.Alternative("Create it twice", func(a *biff.A) {
			resp := apiRequest("POST", "/documents").
				WithBodyJson(JSON{
					"name": "groceries",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("List documents", func(a *biff.A) {
			resp := apiRequest("GET", "/documents").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{
				{"name": "groceries", "total": 0, "key_field": "id"},
			})
		})

		a.Alternative("Append apple", func(a *biff.A) {
			resp := apiRequest("POST", "/documents/groceries:append").
				WithBodyString(`{"id": "1", "item": "apple", "amount": "3"}`).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(resp.BodyString(), `{"id":"1","item":"apple","amount":"3"}`+"\n")

			a.Alternative("Append pear", func(a *biff.A) {
				resp := apiRequest("POST", "/documents/groceries:append").
					WithBodyString(`{"id": "2", "item": "pear", "amount": "5"}`).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusCreated)

				a.Alternative("Find all in insertion order", func(a *biff.A) {
					resp := apiRequest("POST", "/documents/groceries:find").
						WithBodyJson(JSON{"limit": 10}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
						{"id": "1", "item": "apple", "amount": "3"},
						{"id": "2", "item": "pear", "amount": "5"},
					})
				})

				a.Alternative("Find with filter", func(a *biff.A) {
					resp := apiRequest("POST", "/documents/groceries:find").
						WithBodyJson(JSON{"filter": JSON{"item": "pear"}}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
						{"id": "2", "item": "pear", "amount": "5"},
					})
				})

				a.Alternative("Find by key reversed", func(a *biff.A) {
					resp := apiRequest("POST", "/documents/groceries:find").
						WithBodyJson(JSON{"mode": "key", "reverse": true, "limit": 10}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
						{"id": "2", "item": "pear", "amount": "5"},
						{"id": "1", "item": "apple", "amount": "3"},
					})
				})

				a.Alternative("Find with bad mode", func(a *biff.A) {
					resp := apiRequest("POST", "/documents/groceries:find").
						WithBodyJson(JSON{"mode": "psychic"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				})

				a.Alternative("Remove 1", func(a *biff.A) {
					resp := apiRequest("POST", "/documents/groceries:remove").
						WithBodyJson(JSON{"key": 1}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{"id": "1", "item": "apple", "amount": "3"})

					a.Alternative("Remove 1 again", func(a *biff.A) {
						resp := apiRequest("POST", "/documents/groceries:remove").
							WithBodyJson(JSON{"key": 1}).Do()

						biff.AssertEqual(resp.StatusCode, http.StatusNotFound)

						resp = apiRequest("GET", "/documents/groceries").Do()
						biff.AssertEqualJson(resp.BodyJson(), JSON{
							"name":      "groceries",
							"total":     1,
							"key_field": "id",
						})
					})

					a.Alternative("Reload", func(a *biff.A) {
						resp := apiRequest("POST", "/documents/groceries:reload").Do()

						biff.AssertEqual(resp.StatusCode, http.StatusOK)
						biff.AssertEqualJson(resp.BodyJson(), JSON{
							"name":      "groceries",
							"total":     1,
							"key_field": "id",
						})
					})
				})

				a.Alternative("Clear", func(a *biff.A) {
					resp := apiRequest("POST", "/documents/groceries:clear").Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"name":      "groceries",
						"total":     0,
						"key_field": "id",
					})
				})
			})
		})

		a.Alternative("Append nested object", func(a *biff.A) {
			resp := apiRequest("POST", "/documents/groceries:append").
				WithBodyString(`{"id": 1, "tags": ["a", "b"]}`).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Drop document", func(a *biff.A) {
			resp := apiRequest("POST", "/documents/groceries:drop").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Get dropped document", func(a *biff.A) {
				resp := apiRequest("GET", "/documents/groceries").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})
	})

	a.Alternative("Append on not existing document", func(a *biff.A) {
		resp := apiRequest("POST", "/documents/pantry:append").
			WithBodyString(`{"id": 7, "item": "rice"}`).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqual(resp.BodyString(), `{"id":7,"item":"rice"}`+"\n")

		a.Alternative("Find it", func(a *biff.A) {
			resp := apiRequest("POST", "/documents/pantry:find").
				WithBodyJson(JSON{"filter": JSON{"id": 7}}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyString(), `{"id":7,"item":"rice"}`+"\n")
		})
	})

	a.Alternative("Remove on not existing document", func(a *biff.A) {
		resp := apiRequest("POST", "/documents/pantry:remove").
			WithBodyJson(JSON{"key": 1}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})
}
