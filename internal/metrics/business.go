package metrics

// IncrementLeadCreated increments lead creation counter
func (m *Metrics) IncrementLeadCreated() {
	m.safeExecute("IncrementLeadCreated", func() {
		m.LeadCreatedTotal.Inc()
	})
}

// IncrementLeadConverted increments lead conversion counter
func (m *Metrics) IncrementLeadConverted() {
	m.safeExecute("IncrementLeadConverted", func() {
		m.LeadConvertedTotal.Inc()
	})
}

// IncrementSmsSent increments the outbound SMS counter with a status label
func (m *Metrics) IncrementSmsSent(status string) {
	m.safeExecute("IncrementSmsSent", func() {
		m.SmsSentTotal.WithLabelValues(status).Inc()
	})
}

// IncrementJobCompleted increments the completed jobs counter
func (m *Metrics) IncrementJobCompleted() {
	m.safeExecute("IncrementJobCompleted", func() {
		m.JobsCompletedTotal.Inc()
	})
}

// SetLeadsTotal sets total leads gauge
func (m *Metrics) SetLeadsTotal(count int64) {
	m.safeExecute("SetLeadsTotal", func() {
		m.LeadsTotal.Set(float64(count))
	})
}

// SetCustomersTotal sets total customers gauge
func (m *Metrics) SetCustomersTotal(count int64) {
	m.safeExecute("SetCustomersTotal", func() {
		m.CustomersTotal.Set(float64(count))
	})
}
