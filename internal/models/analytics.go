// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package models

// CategoryStats describes one product category ranked by purchase count.
type CategoryStats struct {
	Category              string   `json:"product_category_name"`
	PurchaseCount         int      `json:"purchase_count"`
	MajorityCustomerState string   `json:"majority_customer_state"`
	MajorityCustomerCity  string   `json:"majority_customer_city"`
	AverageWeightG        *float64 `json:"average_weight"`
	AverageVolumeCm3      *float64 `json:"average_volume"`
}

// ProductAverages are dataset-wide product size means.
type ProductAverages struct {
	WeightG   *float64 `json:"average_weight_g"`
	VolumeCm3 *float64 `json:"average_volume_cm3"`
}

// ProductView is the render-ready result of the product view.
type ProductView struct {
	TopCategories []CategoryStats `json:"top_categories"`
	Overall       ProductAverages `json:"overall"`
}

// CityDelivery is the mean delivery time for one customer city.
type CityDelivery struct {
	City            string  `json:"customer_city"`
	AvgDeliveryDays float64 `json:"avg_delivery_time"`
}

// StateDelivery is the mean delivery time and order volume for one customer state.
type StateDelivery struct {
	State           string  `json:"customer_state"`
	AvgDeliveryDays float64 `json:"avg_delivery_time"`
	SalesCount      int     `json:"sales_count"`
}

// CustomerView is the render-ready result of the customer view.
type CustomerView struct {
	Cities []CityDelivery  `json:"cities"`
	States []StateDelivery `json:"states"`
}
