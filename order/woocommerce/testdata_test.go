package woocommerce_test

const orderJSON = `{
  "id": 1042,
  "parent_id": 0,
  "status": "completed",
  "currency": "USD",
  "date_created": "2024-03-09T14:05:07",
  "date_created_gmt": "2024-03-09T17:05:07",
  "total": "29.99",
  "billing": {"first_name": "Ana", "email": "ana@example.com"},
  "payment_method": "stripe",
  "payment_method_title": "Credit card",
  "line_items": [
    {"id": 1, "name": "Shirt", "quantity": 1},
    {"id": 2, "name": "Hat", "quantity": 2}
  ]
}`
