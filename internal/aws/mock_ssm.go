// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// MockSSMClient implements SSMAPI for testing. It records every call so
// tests can assert that no PutParameter was issued.
type MockSSMClient struct {
	GetParamFunc func(context.Context, *ssm.GetParameterInput, ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParamFunc func(context.Context, *ssm.PutParameterInput, ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)

	GetCalls []*ssm.GetParameterInput
	PutCalls []*ssm.PutParameterInput
}

func (m *MockSSMClient) GetParameter(ctx context.Context, input *ssm.GetParameterInput, opts ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	m.GetCalls = append(m.GetCalls, input)
	if m.GetParamFunc != nil {
		return m.GetParamFunc(ctx, input, opts...)
	}
	return nil, fmt.Errorf("GetParameter not implemented")
}

func (m *MockSSMClient) PutParameter(ctx context.Context, input *ssm.PutParameterInput, opts ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	m.PutCalls = append(m.PutCalls, input)
	if m.PutParamFunc != nil {
		return m.PutParamFunc(ctx, input, opts...)
	}
	return nil, fmt.Errorf("PutParameter not implemented")
}
