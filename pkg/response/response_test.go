package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	b, err := json.Marshal(Error(404, "unknown tax year"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","status_code":404,"error":"unknown tax year"}`, string(b))

	b, err = json.Marshal(SuccessWithWarnings(200, map[string]int{"net_pay": 0}, []string{"NEGATIVE_NET_PAY"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","status_code":200,"data":{"net_pay":0},"warnings":["NEGATIVE_NET_PAY"]}`, string(b))
}

func TestPaged(t *testing.T) {
	assert.Equal(t, 3, Paged(nil, 41, 1, 20).TotalPages)
	assert.Equal(t, 2, Paged(nil, 40, 1, 20).TotalPages)
	assert.Equal(t, 0, Paged(nil, 0, 1, 20).TotalPages)
}
